// Command p256 is a CLI over the P-256 key management and signing
// operations. Keys, messages, and signatures are hex-encoded on the
// command line; `--secret -` reads the secret from the terminal
// without echo.
package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/luxfi/p256/pkg/config"
	"github.com/luxfi/p256/pkg/logger"
	"github.com/luxfi/p256/pkg/p256"
)

const Version = "0.1.0"

func main() {
	app := &cli.Command{
		Name:    "p256",
		Usage:   "NIST P-256 key management and ECDSA signing",
		Version: Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			keygenCommand(),
			pubgenCommand(),
			validateCommand(),
			signCommand(),
			verifyCommand(),
			pubxyCommand(),
			compressCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func setup(cmd *cli.Command) error {
	if err := config.InitViperConfig(); err != nil {
		return err
	}
	logger.Init(viper.GetString("environment"), cmd.Bool("debug"))
	return nil
}

func keygenCommand() *cli.Command {
	return &cli.Command{
		Name:  "keygen",
		Usage: "Generate a new keypair",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := setup(cmd); err != nil {
				return err
			}
			kp, err := p256.GenerateKeypair()
			if err != nil {
				return err
			}
			fmt.Printf("secret %s\n", hex.EncodeToString(kp.SecretKey))
			fmt.Printf("public %s\n", hex.EncodeToString(kp.PublicKey))
			return nil
		},
	}
}

func pubgenCommand() *cli.Command {
	return &cli.Command{
		Name:  "pubgen",
		Usage: "Derive the public key of a secret key",
		Flags: []cli.Flag{secretFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := setup(cmd); err != nil {
				return err
			}
			secret, err := readSecret(cmd)
			if err != nil {
				return err
			}
			public, err := p256.DerivePublicKey(secret)
			if err != nil {
				return err
			}
			fmt.Println(hex.EncodeToString(public))
			return nil
		},
	}
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Check that a public key is a valid curve point",
		Flags: []cli.Flag{keyFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := setup(cmd); err != nil {
				return err
			}
			pub, err := hexFlag(cmd, "key")
			if err != nil {
				return err
			}
			valid, err := p256.ValidatePublicKey(pub)
			if err != nil {
				return err
			}
			fmt.Println(valid)
			if !valid {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

func signCommand() *cli.Command {
	return &cli.Command{
		Name:  "sign",
		Usage: "Sign a message with a secret key",
		Flags: []cli.Flag{
			secretFlag(),
			&cli.StringFlag{
				Name:     "message",
				Aliases:  []string{"m"},
				Usage:    "Message bytes, hex encoded (may be empty)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "ephemeral",
				Usage: "Fixed 32-byte signing nonce, hex encoded; never reuse one across messages",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := setup(cmd); err != nil {
				return err
			}
			secret, err := readSecret(cmd)
			if err != nil {
				return err
			}
			message, err := hexFlag(cmd, "message")
			if err != nil {
				return err
			}
			var sig []byte
			if cmd.String("ephemeral") != "" {
				ephemeral, err := hexFlag(cmd, "ephemeral")
				if err != nil {
					return err
				}
				sig, err = p256.SignWithEphemeral(secret, message, ephemeral)
				if err != nil {
					return err
				}
			} else {
				sig, err = p256.Sign(secret, message)
				if err != nil {
					return err
				}
			}
			fmt.Println(hex.EncodeToString(sig))
			return nil
		},
	}
}

func verifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Verify a signature over a message",
		Flags: []cli.Flag{
			keyFlag(),
			&cli.StringFlag{
				Name:     "message",
				Aliases:  []string{"m"},
				Usage:    "Message bytes, hex encoded (may be empty)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "signature",
				Aliases:  []string{"s"},
				Usage:    "64-byte r||s signature, hex encoded",
				Required: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := setup(cmd); err != nil {
				return err
			}
			pub, err := hexFlag(cmd, "key")
			if err != nil {
				return err
			}
			message, err := hexFlag(cmd, "message")
			if err != nil {
				return err
			}
			sig, err := hexFlag(cmd, "signature")
			if err != nil {
				return err
			}
			valid, err := p256.Verify(pub, message, sig)
			if err != nil {
				return err
			}
			fmt.Println(valid)
			if !valid {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

func pubxyCommand() *cli.Command {
	return &cli.Command{
		Name:  "pubxy",
		Usage: "Print the affine coordinates of a public key",
		Flags: []cli.Flag{keyFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := setup(cmd); err != nil {
				return err
			}
			pub, err := hexFlag(cmd, "key")
			if err != nil {
				return err
			}
			x, y, err := p256.Coordinates(pub)
			if err != nil {
				return err
			}
			fmt.Printf("x %s\n", hex.EncodeToString(x))
			fmt.Printf("y %s\n", hex.EncodeToString(y))
			return nil
		},
	}
}

func compressCommand() *cli.Command {
	return &cli.Command{
		Name:  "compress",
		Usage: "Print the 33-byte compressed form of a public key",
		Flags: []cli.Flag{keyFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := setup(cmd); err != nil {
				return err
			}
			pub, err := hexFlag(cmd, "key")
			if err != nil {
				return err
			}
			compressed, err := p256.Compress(pub)
			if err != nil {
				return err
			}
			fmt.Println(hex.EncodeToString(compressed))
			return nil
		},
	}
}

func secretFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "secret",
		Aliases:  []string{"k"},
		Usage:    "32-byte secret key, hex encoded, or '-' to prompt",
		Required: true,
	}
}

func keyFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "key",
		Aliases:  []string{"p"},
		Usage:    "Public key in raw (64), uncompressed (65), or compressed (33) form, hex encoded",
		Required: true,
	}
}

func hexFlag(cmd *cli.Command, name string) ([]byte, error) {
	raw, err := hex.DecodeString(cmd.String(name))
	if err != nil {
		return nil, fmt.Errorf("flag --%s is not valid hex: %w", name, err)
	}
	return raw, nil
}

func readSecret(cmd *cli.Command) ([]byte, error) {
	raw := cmd.String("secret")
	if raw == "-" {
		fmt.Fprint(os.Stderr, "Secret key (hex): ")
		line, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, err
		}
		raw = strings.TrimSpace(string(line))
	}
	secret, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("secret key is not valid hex: %w", err)
	}
	return secret, nil
}
