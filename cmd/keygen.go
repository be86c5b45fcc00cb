// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate encryption and signing keys",
	Long:  `Generate fresh base64 encoded 32 byte keys for the ENCRYPTION_KEY and SIGNING_KEY environment variables.`,
	Run: func(cmd *cobra.Command, args []string) {
		encryptionKey := make([]byte, 32)
		if _, err := rand.Read(encryptionKey); err != nil {
			log.Fatalf("Failed to generate encryption key: %v", err)
		}

		signingKey := make([]byte, 32)
		if _, err := rand.Read(signingKey); err != nil {
			log.Fatalf("Failed to generate signing key: %v", err)
		}

		fmt.Printf("ENCRYPTION_KEY=%s\n", base64.StdEncoding.EncodeToString(encryptionKey))
		fmt.Printf("SIGNING_KEY=%s\n", base64.StdEncoding.EncodeToString(signingKey))
	},
}

func init() {
	rootCmd.AddCommand(keygenCmd)
}
