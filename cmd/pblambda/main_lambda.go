//go:build lambda

/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"log"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/mikeb26/pbrotation/internal"
)

func main() {
	logger, err := internal.NewLogger(os.Getenv(internal.EnvLogLevel))
	if err != nil {
		log.Fatalf("pblambda: %v", err)
	}
	defer logger.Sync()

	lambda.Start(newHandler(logger).handle)
}
