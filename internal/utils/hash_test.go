// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"testing"
)

func TestHash(t *testing.T) {
	data := []byte("test-data")

	sum1 := Hash(data)
	sum2 := Hash(data)

	if len(sum1) != sha256.Size {
		t.Fatalf("expected %d bytes, got %d", sha256.Size, len(sum1))
	}
	if !bytes.Equal(sum1, sum2) {
		t.Fatal("hash results differ for the same input")
	}

	expected := sha256.Sum256(data)
	if !bytes.Equal(sum1, expected[:]) {
		t.Fatal("hash does not match sha256")
	}
}

func TestHash_Concurrent(t *testing.T) {
	expected := sha256.Sum256([]byte("payload"))

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !bytes.Equal(Hash([]byte("payload")), expected[:]) {
				t.Error("pooled hasher returned a wrong digest")
			}
		}()
	}
	wg.Wait()
}

func TestETag(t *testing.T) {
	sum := sha256.Sum256([]byte("BEGIN:VCARD"))
	want := `"` + hex.EncodeToString(sum[:]) + `"`

	if got := ETag([]byte("BEGIN:VCARD")); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
	if ETag([]byte("a")) == ETag([]byte("b")) {
		t.Error("different bodies must have different tags")
	}
}
