// Package auth retrieves and provisions the Gemini API credential.
//
// The orchestrator only consumes the two Provisioner primitives: "is a usable
// credential present" and "prompt the user to select one". Credential storage
// itself stays here.
package auth

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	credentialDir  = ".bharatai-studio"
	credentialFile = "credentials.gpg"
)

// GetAPIKey retrieves the Gemini API key from available sources.
// Priority order:
//  1. GEMINI_API_KEY environment variable
//  2. GPG-encrypted file at ~/.bharatai-studio/credentials.gpg
func GetAPIKey() (string, error) {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		log.Debug().Msg("Using API key from environment variable")
		return key, nil
	}

	key, err := getFromGPG()
	if err == nil && key != "" {
		log.Debug().Msg("Using API key from GPG encrypted file")
		return key, nil
	}

	log.Debug().Err(err).Msg("No API key source available")
	return "", fmt.Errorf("API key not found. Set GEMINI_API_KEY or store one at ~/%s/%s", credentialDir, credentialFile)
}

// getFromGPG decrypts the API key from the GPG-encrypted credentials file.
func getFromGPG() (string, error) {
	credPath, err := getCredentialPath()
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(credPath); os.IsNotExist(err) {
		return "", fmt.Errorf("GPG credentials file not found at %s", credPath)
	}

	log.Debug().Str("file", credPath).Msg("Decrypting GPG credentials")

	cmd := exec.Command("gpg", "--decrypt", "--quiet", credPath)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("GPG decryption failed: %s", string(exitErr.Stderr))
		}
		return "", fmt.Errorf("GPG decryption failed: %w", err)
	}

	return strings.TrimSpace(string(output)), nil
}

// getCredentialPath returns the full path to the credentials file.
func getCredentialPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, credentialDir, credentialFile), nil
}

// Provisioner exposes the credential primitives the orchestrator consumes.
type Provisioner interface {
	// HasCredential reports whether a usable API credential is present.
	HasCredential() bool
	// SelectCredential prompts the user to provide one and makes it
	// available to subsequent GetAPIKey calls.
	SelectCredential(ctx context.Context) error
}

// TerminalProvisioner provisions credentials interactively on the terminal.
type TerminalProvisioner struct {
	In  io.Reader
	Out io.Writer
}

// NewTerminalProvisioner returns a Provisioner reading from stdin and
// writing to stderr.
func NewTerminalProvisioner() *TerminalProvisioner {
	return &TerminalProvisioner{In: os.Stdin, Out: os.Stderr}
}

// HasCredential implements Provisioner.
func (p *TerminalProvisioner) HasCredential() bool {
	_, err := GetAPIKey()
	return err == nil
}

// SelectCredential prompts for an API key and exports it into the process
// environment so GetAPIKey picks it up.
func (p *TerminalProvisioner) SelectCredential(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fmt.Fprint(p.Out, "Gemini API key: ")

	reader := bufio.NewReader(p.In)
	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		return fmt.Errorf("failed to read API key: %w", err)
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return fmt.Errorf("no API key entered")
	}

	if err := os.Setenv("GEMINI_API_KEY", input); err != nil {
		return fmt.Errorf("failed to set API key: %w", err)
	}

	log.Info().Msg("API credential selected")
	return nil
}
