package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/pflag"

	"github.com/dkeye/VoiceAgent/internal/app/agent"
	"github.com/dkeye/VoiceAgent/internal/app/issuer"
)

func runInspect(args []string) error {
	fs := pflag.NewFlagSet("inspect", pflag.ContinueOnError)
	secret := fs.String("secret", os.Getenv("LIVEKIT_API_SECRET"), "verify the signature with this secret")
	if err := fs.Parse(args); err != nil {
		return err
	}

	token, err := readToken(fs.Args(), os.Stdin)
	if err != nil {
		return err
	}

	claims, err := issuer.ParseUnverified(token)
	if err != nil {
		return err
	}
	verified := "skipped"
	if *secret != "" {
		if err := verify(token, *secret); err != nil {
			verified = "FAILED: " + err.Error()
		} else {
			verified = "ok"
		}
	}

	return printClaims(os.Stdout, claims, verified)
}

// readToken takes the token from the first argument, or stdin for "-".
func readToken(args []string, stdin io.Reader) (string, error) {
	if len(args) == 0 {
		return "", errors.New("token argument is required")
	}
	if args[0] != "-" {
		return strings.TrimSpace(args[0]), nil
	}
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if line = strings.TrimSpace(line); line == "" {
		return "", errors.New("empty token on stdin")
	}
	return line, nil
}

func verify(token, secret string) error {
	_, err := jwt.ParseWithClaims(token, &issuer.Claims{}, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	return err
}

func printClaims(w io.Writer, c *issuer.Claims, verified string) error {
	room := ""
	if c.Video != nil {
		room = c.Video.Room
	}
	fmt.Fprintf(w, "identity:  %s\n", c.Subject)
	fmt.Fprintf(w, "name:      %s\n", c.Name)
	fmt.Fprintf(w, "room:      %s\n", room)
	if c.ExpiresAt != nil {
		fmt.Fprintf(w, "expires:   %s\n", c.ExpiresAt.Time.Format(time.RFC3339))
	}
	if c.RoomConfig != nil {
		for _, a := range c.RoomConfig.Agents {
			fmt.Fprintf(w, "agent:     %s\n", a.AgentName)
		}
	}
	fmt.Fprintf(w, "signature: %s\n", verified)

	a := agent.NewAssistant()
	a.LoadMetadata(c.Metadata)
	if d := a.Document(); d != nil {
		fmt.Fprintf(w, "document:  %s (%d bytes)\n", d.Filename, len(d.Content))
	}
	fmt.Fprintf(w, "welcome:   %s\n", a.Welcome())
	return nil
}
