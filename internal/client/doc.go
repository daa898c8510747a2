// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the privacyctl command-line runtime.
//
// It mints bearer tokens with the shared sign key, dispatches one command
// per invocation to the server through the adapter package, and prints the
// result as indented JSON.
package client
