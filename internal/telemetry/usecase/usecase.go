package usecase

import (
	"context"

	"smartfarm-assistant/internal/catalog"
	"smartfarm-assistant/internal/model"
	"smartfarm-assistant/internal/repository"
	"smartfarm-assistant/internal/telemetry"
	"smartfarm-assistant/pkg/log"
)

const defaultHistoryLimit = 50

type implUseCase struct {
	l       log.Logger
	repo    repository.Telemetry
	sensors catalog.Sensors
}

func New(l log.Logger, repo repository.Telemetry, sensors catalog.Sensors) telemetry.UseCase {
	return &implUseCase{l: l, repo: repo, sensors: sensors}
}

func (uc implUseCase) Realtime(ctx context.Context, ip telemetry.RealtimeInput) (model.Record, error) {
	record, err := uc.repo.Latest(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "telemetry.usecase.Realtime: %v", err)
		return nil, err
	}

	if ip.GetBy == "" {
		return record, nil
	}
	if _, ok := uc.sensors.ByKey(ip.GetBy); !ok {
		return nil, telemetry.ErrUnknownField
	}
	value, ok := record[ip.GetBy]
	if !ok {
		return model.Record{}, nil
	}
	return model.Record{ip.GetBy: value}, nil
}

func (uc implUseCase) History(ctx context.Context, ip telemetry.HistoryInput) (telemetry.HistoryOutput, error) {
	order, err := parseOrder(ip.SortBy)
	if err != nil {
		return telemetry.HistoryOutput{}, err
	}

	// Paging params come as a pair or not at all.
	switch {
	case ip.PageNum == 0 && ip.PageSize == 0:
		ip.PageNum, ip.PageSize = 1, defaultHistoryLimit
	case ip.PageNum <= 0 || ip.PageSize <= 0:
		return telemetry.HistoryOutput{}, telemetry.ErrInvalidPaging
	}

	opt := repository.RangeOptions{
		Order: order,
		Limit: ip.PageNum * ip.PageSize,
	}
	if ip.From != nil {
		opt.From = *ip.From
	}
	if ip.To != nil {
		opt.To = *ip.To
	}
	if !opt.From.IsZero() && !opt.To.IsZero() && opt.From.After(opt.To) {
		return telemetry.HistoryOutput{}, telemetry.ErrInvalidRange
	}

	records, err := uc.repo.Range(ctx, opt)
	if err != nil {
		uc.l.Errorf(ctx, "telemetry.usecase.History: %v", err)
		return telemetry.HistoryOutput{}, err
	}

	// The store has no offset support, so the page is cut client-side from an
	// over-fetched window.
	start := (ip.PageNum - 1) * ip.PageSize
	if start >= len(records) {
		records = nil
	} else {
		records = records[start:]
	}

	return telemetry.HistoryOutput{
		Records:  records,
		PageNum:  ip.PageNum,
		PageSize: ip.PageSize,
	}, nil
}

func parseOrder(sortBy string) (repository.Order, error) {
	switch sortBy {
	case "", "desc":
		return repository.OrderDesc, nil
	case "asc":
		return repository.OrderAsc, nil
	}
	return "", telemetry.ErrInvalidSort
}
