/*
Zlangd starts a zlang analysis server and begins listening for HTTP requests.

Usage:

	zlangd [flags]

Once started, the server exposes the analyzer over REST under /v1 (POST
/v1/login, POST /v1/analyze, GET /v1/runs, GET /v1/runs/{id}, GET /v1/info).
By default it listens on localhost:8787.

If a JWT token secret is not given, one is generated and seeded from the
system's CSPRNG. Tokens issued with a generated secret become invalid as soon
as the server shuts down; this is fine for testing but a secret must be given
explicitly in production.

The flags are:

	-v, --version
		Give the current version of zlangd and then exit.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. Defaults to the value of environment variable
		ZLANGD_LISTEN_ADDRESS, and if that is not given, localhost:8787.

	-s, --secret TOKEN_SECRET
		Use the provided secret for signing JWT tokens. Repeated until it is
		at least 32 bytes; maximum size is 64 bytes. Defaults to the value of
		environment variable ZLANGD_TOKEN_SECRET; if that is empty too, a
		random secret is generated.

	-u, --username OPERATOR_USERNAME
		Username of the single operator account. Defaults to "operator", or
		the value of environment variable ZLANGD_USERNAME.

	-p, --password OPERATOR_PASSWORD
		Password of the single operator account. Defaults to the value of
		environment variable ZLANGD_PASSWORD; if neither is given, a random
		password is generated and printed once at startup.

	--db DRIVER[:PARAMS]
		Use the given DB connection string. DRIVER must be one of: inmem,
		sqlite. sqlite needs the path to the DB file, e.g. sqlite:zlangd.db.
		Defaults to the value of environment variable ZLANGD_DATABASE, and if
		that is not given, an in-memory database.

	--rules FILE
	--table FILE
		The grammar rules file and parse table file the analyzer is built
		from. Default to "zlang-rules.lis" and "zlang.lr".
*/
package main

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/zlang-project/zsema"
	"github.com/zlang-project/zsema/internal/version"
	"github.com/zlang-project/zsema/server"
	"github.com/zlang-project/zsema/server/ops"
)

const (
	EnvListen   = "ZLANGD_LISTEN_ADDRESS"
	EnvSecret   = "ZLANGD_TOKEN_SECRET"
	EnvDB       = "ZLANGD_DATABASE"
	EnvUsername = "ZLANGD_USERNAME"
	EnvPassword = "ZLANGD_PASSWORD"
)

var (
	flagVersion  = pflag.BoolP("version", "v", false, "Give the current version of zlangd and then exit.")
	flagListen   = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagSecret   = pflag.StringP("secret", "s", "", "Use the given secret for token generation.")
	flagDB       = pflag.String("db", "", "Use the given DB connection string.")
	flagUsername = pflag.StringP("username", "u", "", "Username of the operator account.")
	flagPassword = pflag.StringP("password", "p", "", "Password of the operator account.")
	flagRules    = pflag.String("rules", "zlang-rules.lis", "The grammar rules file to parse against.")
	flagTable    = pflag.String("table", "zlang.lr", "The parse table file to parse against.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("zlangd %s\n", version.Current)
		return
	}

	if args := pflag.Args(); len(args) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	addr := envOrFlag(EnvListen, "listen", *flagListen)
	if addr == "" {
		addr = "localhost:8787"
	}

	db, err := resolveDB(envOrFlag(EnvDB, "db", *flagDB))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\nDo -h for help.\n", err)
		os.Exit(1)
	}
	store, err := db.Connect()
	if err != nil {
		log.Fatalf("FATAL could not connect to DB: %s", err.Error())
	}

	secret, generated := resolveSecret(envOrFlag(EnvSecret, "secret", *flagSecret))
	if generated {
		log.Printf("WARN  using generated token secret; all tokens issued will become invalid at shutdown")
	}

	username := envOrFlag(EnvUsername, "username", *flagUsername)
	if username == "" {
		username = "operator"
	}
	password, generatedPw := resolvePassword(envOrFlag(EnvPassword, "password", *flagPassword))
	if generatedPw {
		log.Printf("WARN  using generated operator password: %s", password)
	}
	passwordHash, err := ops.HashPassword(password)
	if err != nil {
		log.Fatalf("FATAL could not hash operator password: %s", err.Error())
	}

	rulesFile, err := os.Open(*flagRules)
	if err != nil {
		log.Fatalf("FATAL %s", err.Error())
	}
	defer rulesFile.Close()

	tableFile, err := os.Open(*flagTable)
	if err != nil {
		log.Fatalf("FATAL %s", err.Error())
	}
	defer tableFile.Close()

	engine, err := zsema.New(rulesFile, tableFile)
	if err != nil {
		log.Fatalf("FATAL could not build engine: %s", err.Error())
	}

	svc := ops.New(store, engine, username, passwordHash)

	handler := server.New(server.Config{
		Backend:     svc,
		Secret:      secret,
		UnauthDelay: time.Second,
	})

	log.Printf("INFO  Starting zlangd %s on %s...", version.Current, addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("FATAL %s", err.Error())
	}
}

func envOrFlag(envVar, flagName, flagVal string) string {
	val := os.Getenv(envVar)
	if pflag.Lookup(flagName).Changed {
		val = flagVal
	}
	return val
}

func resolveDB(connStr string) (server.Database, error) {
	if connStr == "" {
		return server.Database{Type: server.DatabaseInMemory}, nil
	}
	return server.ParseDBConnString(connStr)
}

func resolveSecret(given string) (secret []byte, generated bool) {
	if given != "" {
		secret = []byte(given)
		for len(secret) < server.MinSecretSize {
			secret = append(secret, secret...)
		}
		if len(secret) > server.MaxSecretSize {
			secret = secret[:server.MaxSecretSize]
		}
		return secret, false
	}

	secret = make([]byte, server.MaxSecretSize)
	if _, err := rand.Read(secret); err != nil {
		log.Fatalf("FATAL could not generate token secret: %s", err.Error())
	}
	return secret, true
}

func resolvePassword(given string) (password string, generated bool) {
	if given != "" {
		return given, false
	}

	raw := make([]byte, 18)
	if _, err := rand.Read(raw); err != nil {
		log.Fatalf("FATAL could not generate operator password: %s", err.Error())
	}
	return strings.TrimRight(base32.StdEncoding.EncodeToString(raw), "="), true
}
