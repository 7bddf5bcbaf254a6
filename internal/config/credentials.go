package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// PasswordSource describes where the Neo4j password comes from
type PasswordSource string

const (
	PasswordSourceEnv      PasswordSource = "env"
	PasswordSourceConfig   PasswordSource = "config"
	PasswordSourceKeychain PasswordSource = "keychain"
	PasswordSourceNone     PasswordSource = "none"
)

// DescribePasswordSource reports where the loaded password came from
func DescribePasswordSource(cfg *Config, km *KeyringManager) PasswordSource {
	if os.Getenv("NEO4J_PASSWORD") != "" || os.Getenv("RECIPES_NEO4J_PASSWORD") != "" {
		return PasswordSourceEnv
	}
	if cfg.Neo4j.UseKeychain {
		if stored, err := km.GetNeo4jPassword(cfg.Neo4j.User); err == nil && stored != "" && stored == cfg.Neo4j.Password {
			return PasswordSourceKeychain
		}
	}
	if cfg.Neo4j.Password != "" {
		return PasswordSourceConfig
	}
	return PasswordSourceNone
}

// ReadSecret prompts on out and reads a secret from in.
// A terminal is read without echo; piped input is read up to the first newline.
func ReadSecret(in *os.File, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)

	if term.IsTerminal(int(in.Fd())) {
		bytes, err := term.ReadPassword(int(in.Fd()))
		fmt.Fprintln(out) // New line after password input
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(bytes)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
