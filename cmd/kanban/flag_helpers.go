package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func hasChangedFlags(cmd *cobra.Command, flags ...string) bool {
	for _, flag := range flags {
		if cmd.Flags().Changed(flag) {
			return true
		}
	}
	return false
}

func resolveDescriptionFromStdin(description string, reader io.Reader) (string, error) {
	if description != "-" {
		return description, nil
	}

	input, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read description from stdin: %w", err)
	}

	value := strings.TrimSuffix(string(input), "\n")
	value = strings.TrimSuffix(value, "\r")
	return value, nil
}
