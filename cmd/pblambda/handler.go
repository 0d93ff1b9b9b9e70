/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/mikeb26/pbrotation/internal"
	"github.com/mikeb26/pbrotation/roster"
	"github.com/mikeb26/pbrotation/sched"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

// scheduleRequest mirrors the session setup form. Players accept any form
// roster.ParseJSON does. Locks may be a "A:B,C:D" name list or an array of
// {player1Id, player2Id}.
type scheduleRequest struct {
	Players   json.RawMessage `json:"players"`
	Courts    int             `json:"courts"`
	Rounds    int             `json:"rounds"`
	Gendered  bool            `json:"gendered"`
	Frequency int             `json:"frequency"`
	Seed      int64           `json:"seed"`
	Locks     json.RawMessage `json:"locks"`
	Exempt    string          `json:"exempt"`
	Date      string          `json:"date"`
}

type scheduleResponse struct {
	Schedule sched.Schedule `json:"schedule"`
	Text     string         `json:"text"`
	Summary  string         `json:"summary"`
	Seed     int64          `json:"seed"`
	Warnings []string       `json:"warnings,omitempty"`
}

type handler struct {
	logger *zap.Logger
	// trials per optimizer run; 0 means sched.DefaultTrials
	trials int
	now    func() time.Time
}

func newHandler(logger *zap.Logger) *handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &handler{logger: logger, now: time.Now}
}

func (h *handler) handle(_ context.Context,
	event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {

	if event.RequestContext.HTTP.Method != "" &&
		event.RequestContext.HTTP.Method != http.MethodPost {
		return errResp(http.StatusMethodNotAllowed, "use POST")
	}

	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(http.StatusBadRequest, "invalid base64 body")
		}
		body = string(decoded)
	}

	var req scheduleRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return errResp(http.StatusBadRequest, "invalid JSON: "+err.Error())
	}
	if len(req.Players) == 0 {
		return errResp(http.StatusBadRequest, "missing players field")
	}

	resp, err := h.schedule(req)
	if err != nil {
		h.logger.Info("pblambda: rejected request", zap.Error(err))
		return errResp(http.StatusBadRequest, err.Error())
	}

	respJSON, err := json.Marshal(resp)
	if err != nil {
		return errResp(http.StatusInternalServerError, err.Error())
	}
	return events.LambdaFunctionURLResponse{StatusCode: http.StatusOK,
		Headers: jsonHeader, Body: string(respJSON)}, nil
}

func (h *handler) schedule(req scheduleRequest) (*scheduleResponse, error) {
	participants, err := roster.ParseJSON(req.Players)
	if err != nil {
		return nil, err
	}
	if len(participants) < sched.PlayersPerCourt {
		return nil, fmt.Errorf("need at least %v players (have %v)",
			sched.PlayersPerCourt, len(participants))
	}

	locks, err := parseLocks(participants, req.Locks)
	if err != nil {
		return nil, err
	}
	exempt, err := roster.ParseNames(participants, req.Exempt)
	if err != nil {
		return nil, err
	}
	date, err := internal.ParseDateOrZero(req.Date)
	if err != nil {
		return nil, fmt.Errorf("bad date %q: %w", req.Date, err)
	}

	numCourts := internal.ClampInt(req.Courts, 1, internal.MaxCourts)
	numRounds := internal.ClampInt(req.Rounds, 1, internal.MaxRounds)
	freq := req.Frequency
	if freq == 0 {
		freq = sched.DefaultGenderedFrequency
	}
	freq = internal.ClampInt(freq, 1, internal.MaxGenderedFrequency)

	numCourts, warnings := internal.FitCourts(len(participants), numCourts)

	seed := req.Seed
	if seed == 0 {
		seed = h.now().UnixNano()
	}

	schedule := sched.GenerateWithOptions(participants, sched.Options{
		NumCourts:         numCourts,
		NumRounds:         numRounds,
		GenderedEnabled:   req.Gendered,
		GenderedFrequency: freq,
		Trials:            h.trials,
		Seed:              seed,
		Locks:             locks,
		Exempt:            exempt,
		Logger:            h.logger,
	})

	title := internal.SessionTitle(date, numCourts, numRounds)
	return &scheduleResponse{
		Schedule: schedule,
		Text:     sched.BuildScheduleOutput(schedule, title),
		Summary:  sched.BuildSummaryOutput(sched.Summarize(schedule, participants)),
		Seed:     seed,
		Warnings: warnings,
	}, nil
}

func parseLocks(participants []sched.Participant,
	raw json.RawMessage) ([]sched.LockedPair, error) {

	if len(raw) == 0 {
		return nil, nil
	}
	v := gjson.ParseBytes(raw)
	switch {
	case v.Type == gjson.Null:
		return nil, nil
	case v.Type == gjson.String:
		return roster.ParseLocks(participants, v.Str)
	case v.IsArray():
		var locks []sched.LockedPair
		if err := json.Unmarshal(raw, &locks); err != nil {
			return nil, fmt.Errorf("%w: %w", roster.ErrBadLock, err)
		}
		known := make(map[string]bool, len(participants))
		for _, p := range participants {
			known[p.ID] = true
		}
		for _, lp := range locks {
			if !known[lp.Player1ID] || !known[lp.Player2ID] {
				return nil, fmt.Errorf("%w: unknown id in %v:%v", roster.ErrBadLock,
					lp.Player1ID, lp.Player2ID)
			}
		}
		return locks, nil
	}
	return nil, errors.New("locks must be a string or an array")
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader,
		Body: string(body)}, nil
}
