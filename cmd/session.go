// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/canonical/trust-service/internal/crypto"
	"github.com/canonical/trust-service/internal/logging"
	"github.com/canonical/trust-service/internal/monitoring"
	"github.com/canonical/trust-service/internal/tracing"
	"github.com/canonical/trust-service/pkg/session"
)

var (
	sessionEncryptionKey string
	sessionSigningKey    string
	sessionSubject       string
	sessionProvider      string
	sessionLifetime      time.Duration
)

// sessionCmd mints and inspects session artifacts for local debugging.
// Never point it at production keys from a shell with history enabled.
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Mint and inspect session artifacts",
}

var sessionMintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Mint a session artifact for a subject",
	Run: func(cmd *cobra.Command, args []string) {
		svc := sessionServiceFromFlags()

		artifact, err := svc.Create(sessionSubject, sessionProvider, nil)
		if err != nil {
			log.Fatalf("Failed to mint session: %v", err)
		}

		fmt.Println(artifact)
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <artifact>",
	Short: "Inspect a session artifact",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := sessionServiceFromFlags()

		payload, ok := svc.Parse(args[0])
		if !ok {
			fmt.Fprintln(os.Stderr, "invalid artifact")
			os.Exit(1)
		}

		out, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			log.Fatalf("Failed to encode payload: %v", err)
		}

		fmt.Println(string(out))
	},
}

func sessionServiceFromFlags() *session.Service {
	encryptionKey, err := base64.StdEncoding.DecodeString(sessionEncryptionKey)
	if err != nil {
		log.Fatalf("Encryption key is not valid base64: %v", err)
	}
	signingKey, err := base64.StdEncoding.DecodeString(sessionSigningKey)
	if err != nil {
		log.Fatalf("Signing key is not valid base64: %v", err)
	}

	encrypter, err := crypto.NewEncrypter(encryptionKey)
	if err != nil {
		log.Fatalf("Failed to initialise encrypter: %v", err)
	}
	signer, err := crypto.NewSigner(signingKey)
	if err != nil {
		log.Fatalf("Failed to initialise signer: %v", err)
	}

	logger := logging.NewNoopLogger()
	return session.NewService(encrypter, signer, sessionLifetime, true, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("", logger), logger)
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionMintCmd)
	sessionCmd.AddCommand(sessionInspectCmd)

	sessionCmd.PersistentFlags().StringVar(&sessionEncryptionKey, "encryption-key", "", "Base64 encoded 32 byte encryption key")
	sessionCmd.PersistentFlags().StringVar(&sessionSigningKey, "signing-key", "", "Base64 encoded 32 byte signing key")
	sessionMintCmd.Flags().StringVar(&sessionSubject, "subject", "", "Subject ID")
	sessionMintCmd.Flags().StringVar(&sessionProvider, "provider", "", "Identity provider name")
	sessionMintCmd.Flags().DurationVar(&sessionLifetime, "lifetime", 168*time.Hour, "Session lifetime")

	_ = sessionMintCmd.MarkFlagRequired("subject")
	_ = sessionMintCmd.MarkFlagRequired("provider")
}
