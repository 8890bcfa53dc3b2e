package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"fmt"
	"os"

	"noisekit/internal/config"
	"noisekit/internal/logger"
	"noisekit/internal/server"
)

const (
	defaultAddr = ":2222"
	hostKeyPath = "host_key"
)

func main() {
	presetPath := flag.String("preset", "", "preset file (default: built-in preset)")
	presetName := flag.String("name", "", "preset name inside the file")
	logFormat := flag.String("log-format", "console", "log output: console or json")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	if err := logger.Setup(*logFormat, *logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log := logger.Component("server")

	if err := ensureHostKey(hostKeyPath); err != nil {
		log.Fatal().Err(err).Msg("host key")
	}

	preset := config.Default()
	if *presetPath != "" {
		p, err := config.Load(*presetPath, *presetName)
		if err != nil {
			log.Fatal().Err(err).Msg("load preset")
		}
		preset = p
	}
	log.Info().
		Str("preset", preset.Name).
		Str("algorithm", preset.Algorithm).
		Int("dimensions", preset.Dimensions).
		Msg("preset loaded")

	listenAddr := defaultAddr
	if port := os.Getenv("PORT"); port != "" {
		listenAddr = ":" + port
	}
	sshServer := server.NewSSHServer(listenAddr, hostKeyPath, preset, logger.Component("ssh"))
	log.Info().Msgf("Starting noise preview, connect with: ssh -t -p %s localhost", listenAddr[1:])
	if err := sshServer.Start(); err != nil {
		log.Fatal().Err(err).Msg("SSH server")
	}
}

func ensureHostKey(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // key already exists
	}

	logger.Log().Info().Str("path", path).Msg("generating new host key")
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}

	keyBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return err
	}

	pemBlock := &pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: keyBytes,
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return pem.Encode(f, pemBlock)
}
