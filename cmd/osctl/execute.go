package main

import (
	"context"
	"fmt"
	"time"

	"field-service/internal/clients/backend"
	"field-service/internal/entities"
	"field-service/internal/orderflow"
	"field-service/internal/services"
	"field-service/pkg/contextkeys"
	apperrors "field-service/pkg/errors"
)

type ExecuteCmd struct {
	OrderID       int64         `arg:"" help:"Order id."`
	Action        string        `arg:"" enum:"start_travel,start_service,pause,resume,interrupt,cancel,conclude" help:"Action key."`
	Justificativa string        `short:"j" help:"Free-text justification, for actions that accept one."`
	Tecnico       int64         `short:"t" help:"When set, refuse to send unless the action is available to this technician."`
	BaseURL       string        `default:"http://localhost:3000/api" env:"BACKEND_BASE_URL" help:"field-service API base URL."`
	Token         string        `env:"OSCTL_TOKEN" help:"Bearer token forwarded to the API."`
	Timeout       time.Duration `default:"20s" env:"BACKEND_TIMEOUT" help:"API call timeout."`
}

func (c *ExecuteCmd) Run(g *Globals) error {
	action, ok := entities.ParseActionKey(c.Action)
	if !ok {
		return apperrors.ErrInvalidAction
	}

	ctx := context.Background()
	if c.Token != "" {
		ctx = context.WithValue(ctx, contextkeys.AuthTokenKey, c.Token)
	}
	client := backend.NewClient(c.BaseURL, c.Timeout, g.logger)

	if c.Tecnico > 0 {
		order, err := client.FetchOrder(ctx, c.OrderID)
		if err != nil {
			return err
		}
		if !orderflow.IsAvailable(order, c.Tecnico, action) {
			return fmt.Errorf("%s for technician %d: %w", action, c.Tecnico, apperrors.ErrActionNotAvailable)
		}
	}

	exec := services.NewActionExecutor(client, services.NewMemoryInFlightGuard(c.Timeout), c.Timeout, g.logger)
	msg, err := exec.Execute(ctx, action, c.OrderID, c.Justificativa)
	if err != nil {
		return err
	}
	if msg == "" {
		msg = "occurrence registered"
	}
	_, err = fmt.Fprintln(g.out, msg)
	return err
}
