//go:build !lambda

/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// pblambda serves schedule requests from an AWS Lambda function url when
// built with -tags lambda. Without the tag it answers a single request read
// from stdin, which is handy for trying out request bodies locally.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/joho/godotenv"
	"github.com/mikeb26/pbrotation/internal"
)

func main() {
	_ = godotenv.Load()
	logger, err := internal.NewLogger(os.Getenv(internal.EnvLogLevel))
	if err != nil {
		log.Fatalf("pblambda: %v", err)
	}
	defer logger.Sync()

	body, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatalf("pblambda: reading request: %v", err)
	}
	resp, _ := newHandler(logger).handle(context.Background(),
		events.LambdaFunctionURLRequest{Body: string(body)})
	if resp.StatusCode != 200 {
		fmt.Fprintf(os.Stderr, "status %v\n", resp.StatusCode)
	}
	fmt.Println(resp.Body)
}
