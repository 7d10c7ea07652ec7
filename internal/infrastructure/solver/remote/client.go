// Package remote carries a built constraint model to a solving service over
// HTTP. The service owns the actual CP engine; this adapter only serializes
// the model, enforces the time limit, and maps the verdict back.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/nourish/planner/internal/infrastructure/solver"
	"github.com/nourish/planner/internal/ports/outbound"
)

// Client implements outbound.Solver against a remote solving service.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a solver client for the given service base URL.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{},
		logger:  logger.Named("solver-client"),
	}
}

// Wire structures for the solve endpoint.

type variablePayload struct {
	Name    string             `json:"name"`
	Domain  []outbound.Interval `json:"domain"`
	Boolean bool               `json:"boolean,omitempty"`
}

type termPayload struct {
	Var   string `json:"var"`
	Coeff int64  `json:"coeff"`
}

type linearPayload struct {
	Terms       []termPayload `json:"terms"`
	Op          string        `json:"op"`
	RHS         int64         `json:"rhs"`
	Enforcement []string      `json:"enforcement,omitempty"`
}

type moduloPayload struct {
	Target  int64  `json:"target"`
	Var     string `json:"var"`
	Modulus int64  `json:"modulus"`
}

type solveRequest struct {
	Variables   []variablePayload `json:"variables"`
	Linear      []linearPayload   `json:"linear"`
	Modulo      []moduloPayload   `json:"modulo,omitempty"`
	Maximize    []string          `json:"maximize,omitempty"`
	TimeLimitMS int64             `json:"time_limit_ms"`
	Workers     int               `json:"workers"`
}

type solveResponse struct {
	Status string           `json:"status"`
	Values map[string]int64 `json:"values"`
}

// Solve implements outbound.Solver. The model must have been built with
// solver.NewModel; any other implementation cannot be serialized.
func (c *Client) Solve(ctx context.Context, m outbound.Model, params outbound.SolveParams) (outbound.Solution, error) {
	model, ok := m.(*solver.Model)
	if !ok {
		return nil, fmt.Errorf("unsupported model implementation %T", m)
	}

	reqBody := encodeModel(model, params)

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal solve request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, params.TimeLimit)
	defer cancel()

	endpoint := c.baseURL + "/v1/solve"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		// A deadline hit is a normal verdict: the engine ran out of time.
		if ctx.Err() == context.DeadlineExceeded {
			c.logger.Warn("Solve timed out", zap.Duration("time_limit", params.TimeLimit))
			return solver.NewAssignment(outbound.StatusUnknown, nil), nil
		}
		return nil, fmt.Errorf("solve request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read solve response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("solver error %d: %s", resp.StatusCode, string(body))
	}

	var solveResp solveResponse
	if err := json.Unmarshal(body, &solveResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal solve response: %w", err)
	}

	status := decodeStatus(solveResp.Status)
	c.logger.Debug("Solve completed",
		zap.String("status", status.String()),
		zap.Int("variables", len(solveResp.Values)))

	return solver.NewAssignment(status, solveResp.Values), nil
}

func encodeModel(model *solver.Model, params outbound.SolveParams) solveRequest {
	req := solveRequest{
		TimeLimitMS: params.TimeLimit.Milliseconds(),
		Workers:     params.Workers,
	}

	for _, v := range model.Variables() {
		req.Variables = append(req.Variables, variablePayload{
			Name:    v.Name(),
			Domain:  v.Domain(),
			Boolean: v.IsBool(),
		})
	}

	for _, lc := range model.LinearConstraints() {
		payload := linearPayload{
			Op:  lc.Op.String(),
			RHS: lc.RHS,
		}
		for _, t := range lc.Terms {
			payload.Terms = append(payload.Terms, termPayload{Var: t.Var.Name(), Coeff: t.Coeff})
		}
		for _, lit := range lc.Enforcement {
			payload.Enforcement = append(payload.Enforcement, lit.Name())
		}
		req.Linear = append(req.Linear, payload)
	}

	for _, mc := range model.ModuloConstraints() {
		req.Modulo = append(req.Modulo, moduloPayload{
			Target:  mc.Target,
			Var:     mc.Var.Name(),
			Modulus: mc.Modulus,
		})
	}

	if objective, ok := model.Objective(); ok {
		for _, v := range objective {
			req.Maximize = append(req.Maximize, v.Name())
		}
	}

	return req
}

func decodeStatus(status string) outbound.SolveStatus {
	switch status {
	case "OPTIMAL":
		return outbound.StatusOptimal
	case "FEASIBLE":
		return outbound.StatusFeasible
	case "INFEASIBLE":
		return outbound.StatusInfeasible
	case "MODEL_INVALID":
		return outbound.StatusModelInvalid
	default:
		return outbound.StatusUnknown
	}
}
