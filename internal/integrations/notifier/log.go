package notifier

import (
	"context"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
)

// LogSink пишет уведомления в лог (demo-режим)
type LogSink struct {
	log Logger
}

func NewLogSink(log Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Notify(_ context.Context, n *domain.Notification) error {
	body, err := encode(n)
	if err != nil {
		return err
	}
	s.log.Info("notification: %s", body)
	return nil
}

func (s *LogSink) Close() error {
	return nil
}
