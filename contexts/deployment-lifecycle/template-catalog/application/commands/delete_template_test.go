package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/adapters/memory"
	domainerrors "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/domain/errors"
)

type stubUsage struct {
	inUse bool
	err   error
}

func (s stubUsage) InUse(context.Context, string) (bool, error) {
	return s.inUse, s.err
}

func TestDeleteTemplateRemovesRow(t *testing.T) {
	store := memory.NewStore(nil)
	created, err := newCreateUseCase(store).Execute(context.Background(), CreateTemplateCommand{
		Content: singleVMTemplate,
		Actor:   "a",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	useCase := DeleteTemplateUseCase{Repo: store, Usage: stubUsage{}}
	if err := useCase.Execute(context.Background(), DeleteTemplateCommand{TemplateID: created.ID}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.Get(context.Background(), created.ID); !errors.Is(err, domainerrors.ErrTemplateNotFound) {
		t.Fatalf("template still present: %v", err)
	}
}

func TestDeleteTemplateUnknownID(t *testing.T) {
	store := memory.NewStore(nil)
	useCase := DeleteTemplateUseCase{Repo: store, Usage: stubUsage{}}
	err := useCase.Execute(context.Background(), DeleteTemplateCommand{TemplateID: "missing"})
	if !errors.Is(err, domainerrors.ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestDeleteTemplateStillReferenced(t *testing.T) {
	store := memory.NewStore(nil)
	created, err := newCreateUseCase(store).Execute(context.Background(), CreateTemplateCommand{
		Content: singleVMTemplate,
		Actor:   "a",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	useCase := DeleteTemplateUseCase{Repo: store, Usage: stubUsage{inUse: true}}
	err = useCase.Execute(context.Background(), DeleteTemplateCommand{TemplateID: created.ID})
	if !errors.Is(err, domainerrors.ErrTemplateInUse) {
		t.Fatalf("expected ErrTemplateInUse, got %v", err)
	}
	if _, err := store.Get(context.Background(), created.ID); err != nil {
		t.Fatalf("template should survive a refused delete: %v", err)
	}
}

func TestDeleteTemplateUsageCheckFailure(t *testing.T) {
	store := memory.NewStore(nil)
	created, err := newCreateUseCase(store).Execute(context.Background(), CreateTemplateCommand{
		Content: singleVMTemplate,
		Actor:   "a",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	useCase := DeleteTemplateUseCase{Repo: store, Usage: stubUsage{err: errors.New("ledger offline")}}
	if err := useCase.Execute(context.Background(), DeleteTemplateCommand{TemplateID: created.ID}); err == nil {
		t.Fatal("expected usage check failure to propagate")
	}
}
