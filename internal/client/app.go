package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/MKhiriev/card-privacy/internal/adapter"
	"github.com/MKhiriev/card-privacy/internal/logger"
	"github.com/MKhiriev/card-privacy/models"
)

const usage = `commands:
  version                          print build and server version
  token     <identifier>           print a bearer token
  get       <identifier>           show privacy settings
  set       <identifier> [flag=bool ...]
                                   create privacy settings
  update    <identifier> flag=bool [flag=bool ...]
                                   change privacy settings
  delete    <identifier>           delete privacy settings
  cards     <identifier>           list cards referencing the identifier
  reprocess <identifier>           re-apply the policy to those cards
  status    <identifier> [limit]   show the reprocessing log
  put       <owner>/<collection...>/<href> <file>
                                   upload a vCard
  fetch     <owner>/<collection...>/<href>
                                   print a stored vCard
`

type App struct {
	client    adapter.PrivacyClient
	tokens    TokenIssuer
	fs        afero.Fs
	out       io.Writer
	buildInfo models.AppBuildInfo

	logger *logger.Logger
}

func NewApp(client adapter.PrivacyClient, tokens TokenIssuer, fs afero.Fs, out io.Writer, buildInfo models.AppBuildInfo, logger *logger.Logger) *App {
	return &App{
		client:    client,
		tokens:    tokens,
		fs:        fs,
		out:       out,
		buildInfo: buildInfo,
		logger:    logger,
	}
}

// Usage writes the command summary to w.
func Usage(w io.Writer) {
	fmt.Fprint(w, usage)
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	command, args := args[0], args[1:]
	if command == "version" {
		return a.version(ctx)
	}

	if len(args) == 0 {
		return fmt.Errorf("%w: %s needs an argument", ErrUsage, command)
	}

	switch command {
	case "put", "fetch":
		return a.runCard(ctx, command, args)
	}

	identifier := args[0]
	token, err := a.tokens.CreateToken(ctx, identifier)
	if err != nil {
		return fmt.Errorf("error creating token: %w", err)
	}
	if command == "token" {
		_, err = fmt.Fprintln(a.out, token.String())
		return err
	}
	a.client.SetToken(token.String())

	log := a.logger.WithIdentifier(identifier)
	log.Debug().Str("command", command).Msg("running command")

	switch command {
	case "get":
		settings, err := a.client.GetSettings(ctx, identifier)
		if err != nil {
			return err
		}
		return a.print(settings)
	case "set":
		values, err := parseFlagArgs(args[1:])
		if err != nil {
			return err
		}
		if err = a.client.CreateSettings(ctx, identifier, values); err != nil {
			return err
		}
		return a.print(map[string]string{"status": "created"})
	case "update":
		values, err := parseFlagArgs(args[1:])
		if err != nil {
			return err
		}
		if len(values) == 0 {
			return fmt.Errorf("%w: update needs at least one flag", ErrUsage)
		}
		if err = a.client.UpdateSettings(ctx, identifier, values); err != nil {
			return err
		}
		return a.print(map[string]string{"status": "updated"})
	case "delete":
		if err := a.client.DeleteSettings(ctx, identifier); err != nil {
			return err
		}
		return a.print(map[string]string{"status": "deleted"})
	case "cards":
		matches, err := a.client.FindCards(ctx, identifier)
		if err != nil {
			return err
		}
		return a.print(map[string]any{"matches": matches})
	case "reprocess":
		summary, err := a.client.Reprocess(ctx, identifier)
		if err != nil {
			return err
		}
		return a.print(summary)
	case "status":
		limit, err := parseLimit(args[1:])
		if err != nil {
			return err
		}
		actions, err := a.client.Status(ctx, identifier, limit)
		if err != nil {
			return err
		}
		return a.print(map[string]any{"actions": actions})
	}

	return fmt.Errorf("%w: %q", ErrUnknownCommand, command)
}

func (a *App) version(ctx context.Context) error {
	fmt.Fprint(a.out, a.buildInfo.String())

	serverVersion, err := a.client.Version(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.out, "Server version: %s\n", serverVersion)
	return err
}

// runCard handles put and fetch. The owner segment of the card path is the
// identifier the token is minted for.
func (a *App) runCard(ctx context.Context, command string, args []string) error {
	collection, href, err := splitCardRef(args[0])
	if err != nil {
		return err
	}
	owner, _, _ := strings.Cut(collection, "/")

	token, err := a.tokens.CreateToken(ctx, owner)
	if err != nil {
		return fmt.Errorf("error creating token: %w", err)
	}
	a.client.SetToken(token.String())

	if command == "fetch" {
		body, err := a.client.GetCard(ctx, collection, href)
		if err != nil {
			return err
		}
		_, err = a.out.Write(body)
		return err
	}

	if len(args) < 2 {
		return fmt.Errorf("%w: put needs a file", ErrUsage)
	}
	body, err := afero.ReadFile(a.fs, args[1])
	if err != nil {
		return fmt.Errorf("error reading card file: %w", err)
	}

	uid, err := a.client.PutCard(ctx, collection, href, body)
	if err != nil {
		return err
	}
	return a.print(map[string]string{"status": "stored", "uid": uid})
}

func (a *App) print(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding output: %w", err)
	}
	_, err = fmt.Fprintln(a.out, string(data))
	return err
}

// parseFlagArgs turns "disallow_photo=true" style arguments into a flag map.
// A bare flag name means true. Names are checked by the server.
func parseFlagArgs(args []string) (map[string]bool, error) {
	values := make(map[string]bool, len(args))
	for _, arg := range args {
		name, raw, found := strings.Cut(arg, "=")
		if name == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFlagArg, arg)
		}
		if !found {
			values[name] = true
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFlagArg, arg)
		}
		values[name] = v
	}
	return values, nil
}

func parseLimit(args []string) (uint64, error) {
	if len(args) == 0 {
		return 0, nil
	}
	limit, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil || limit == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLimit, args[0])
	}
	return limit, nil
}

func splitCardRef(ref string) (collection, href string, err error) {
	ref = strings.Trim(ref, "/")
	i := strings.LastIndex(ref, "/")
	if i <= 0 || i == len(ref)-1 {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidCardRef, ref)
	}
	return ref[:i], ref[i+1:], nil
}
