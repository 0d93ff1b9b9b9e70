/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mikeb26/pbrotation/announce"
	"github.com/mikeb26/pbrotation/internal"
	"github.com/mikeb26/pbrotation/roster"
	"github.com/mikeb26/pbrotation/s3store"
	"github.com/mikeb26/pbrotation/sched"
	"go.uber.org/zap"
)

//go:embed help.txt
var helpText string

// cmdHandler defines the signature for command handler functions.
type cmdHandler func(ctx context.Context, env *environment, args []string)

// commands maps command names to their respective handler functions.
var commands = map[string]cmdHandler{
	"help":     handleHelp,
	"generate": handleGenerate,
	"summary":  handleSummary,
	"announce": handleAnnounce,
	"import":   handleImport,
	"rosters":  handleRosters,
}

// environment holds settings read from the process environment or .env.
type environment struct {
	bucket  string
	webhook string
	logger  *zap.Logger
}

func loadEnvironment() (*environment, error) {
	// a missing .env file is fine
	_ = godotenv.Load()

	logger, err := internal.NewLogger(os.Getenv(internal.EnvLogLevel))
	if err != nil {
		return nil, err
	}
	env := &environment{
		bucket:  os.Getenv(internal.EnvBucket),
		webhook: os.Getenv(internal.EnvDiscordWebhook),
		logger:  logger,
	}
	if env.bucket == "" {
		env.bucket = internal.DefaultBucket
	}
	return env, nil
}

func (env *environment) store(ctx context.Context) (*s3store.Store, error) {
	store := s3store.New(ctx, env.bucket, false, env.logger)
	if err := store.Init(); err != nil {
		return nil, err
	}
	return store, nil
}

func main() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))
	ctx := context.Background()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	env, err := loadEnvironment()
	if err != nil {
		log.Fatalf("Error loading environment: %v", err)
	}
	defer env.logger.Sync()

	cmd := os.Args[1]
	if handler, ok := commands[cmd]; ok {
		handler(ctx, env, os.Args[2:])
	} else {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("%v", helpText)
}

func handleHelp(ctx context.Context, env *environment, args []string) {
	usage()
}

func handleGenerate(ctx context.Context, env *environment, args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	sf := addSessionFlags(fs)
	asJSON := fs.Bool("json", false, "Print the schedule as JSON")
	saveName := fs.String("save", "", "Save the schedule to the S3 bucket under this name")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	sess, err := sf.build(ctx, env)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	sess.printWarnings(os.Stderr)
	schedule := sess.generate()

	if *saveName != "" {
		store, err := env.store(ctx)
		if err != nil {
			log.Fatalf("Error opening bucket %v: %v", env.bucket, err)
		}
		err = store.PutJSON(ctx, s3store.ScheduleKey(*saveName), sess.saved(schedule))
		if err != nil {
			log.Fatalf("Error saving schedule: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Saved schedule to %v%v/%v\n", s3store.URIScheme,
			env.bucket, s3store.ScheduleKey(*saveName))
	}

	if *asJSON {
		data, err := json.MarshalIndent(sess.saved(schedule), "", "  ")
		if err != nil {
			log.Fatalf("Error encoding schedule: %v", err)
		}
		fmt.Println(string(data))
		return
	}
	fmt.Print(sched.BuildScheduleOutput(schedule, sess.title))
}

func handleSummary(ctx context.Context, env *environment, args []string) {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	sf := addSessionFlags(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	sess, err := sf.build(ctx, env)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	sess.printWarnings(os.Stderr)
	schedule := sess.generate()

	fmt.Print(sched.BuildScheduleOutput(schedule, sess.title))
	fmt.Println()
	fmt.Print(sched.BuildSummaryOutput(sched.Summarize(schedule, sess.participants)))
}

func handleAnnounce(ctx context.Context, env *environment, args []string) {
	fs := flag.NewFlagSet("announce", flag.ExitOnError)
	sf := addSessionFlags(fs)
	webhook := fs.String("webhook", env.webhook, "Discord webhook url")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *webhook == "" {
		fmt.Fprintf(os.Stderr, "Please provide --webhook or set %v.\n",
			internal.EnvDiscordWebhook)
		fs.Usage()
		os.Exit(1)
	}

	sess, err := sf.build(ctx, env)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	sess.printWarnings(os.Stderr)
	schedule := sess.generate()

	a, err := announce.New(*webhook, env.logger)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	if err := a.Announce(ctx, sess.title, schedule); err != nil {
		log.Fatalf("Error announcing schedule: %v", err)
	}
	fmt.Printf("Announced %v rounds\n", len(schedule.Rounds))
}

func handleImport(ctx context.Context, env *environment, args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	url := fs.String("url", "", "Sign-up page holding a roster table")
	saveName := fs.String("save", "", "Save the roster to the S3 bucket under this name")
	out := fs.String("out", "", "Write the roster to a local .json or .csv file")
	maxAge := fs.Duration("max-age", time.Hour, "Reuse a cached copy of the page this long")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *url == "" || (*saveName == "" && *out == "") {
		fmt.Fprintln(os.Stderr, "Please provide --url and one of --save or --out.")
		fs.Usage()
		os.Exit(1)
	}

	client := internal.NewCachedHttpClient(ctx, env.bucket, *maxAge, env.logger)
	participants, err := roster.FetchHTML(ctx, client, *url)
	if err != nil {
		log.Fatalf("Error importing roster: %v", err)
	}

	if *saveName != "" {
		store, err := env.store(ctx)
		if err != nil {
			log.Fatalf("Error opening bucket %v: %v", env.bucket, err)
		}
		if err := store.PutJSON(ctx, s3store.RosterKey(*saveName), participants); err != nil {
			log.Fatalf("Error saving roster: %v", err)
		}
		fmt.Printf("Saved %v players as %v%v\n", len(participants),
			s3store.URIScheme, *saveName)
	}
	if *out != "" {
		if err := writeRosterFile(*out, participants); err != nil {
			log.Fatalf("Error writing %v: %v", *out, err)
		}
		fmt.Printf("Wrote %v players to %v\n", len(participants), *out)
	}
}

func handleRosters(ctx context.Context, env *environment, args []string) {
	fs := flag.NewFlagSet("rosters", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	store, err := env.store(ctx)
	if err != nil {
		log.Fatalf("Error opening bucket %v: %v", env.bucket, err)
	}
	names, err := store.List(ctx, s3store.RosterPrefix+"/")
	if err != nil {
		log.Fatalf("Error listing rosters: %v", err)
	}
	if len(names) == 0 {
		fmt.Printf("No rosters saved in %v.\n", env.bucket)
		return
	}
	for _, n := range names {
		n = strings.TrimSuffix(filepath.Base(n), ".json")
		fmt.Printf("  - %v%v\n", s3store.URIScheme, n)
	}
}

func writeRosterFile(filename string, participants []sched.Participant) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return roster.WriteCSV(f, participants)
	}
	data, err := roster.MarshalJSON(participants)
	if err != nil {
		return err
	}
	_, err = f.Write(append(data, '\n'))
	return err
}
