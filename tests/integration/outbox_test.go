package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetpay/walletledger/internal/domain"
	"github.com/fleetpay/walletledger/internal/infrastructure/eventpublisher"
	"github.com/fleetpay/walletledger/internal/usecase"
)

func TestOutboxEventCreation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.DB.CreateTestHolderWithBalance(ctx, domain.HolderTypePlatform, "FleetPay", "NGN", decimal.NewFromInt(50000), true)
	rider := env.DB.CreateTestHolder(ctx, domain.HolderTypeRider, "Ade", "NGN", false)

	transfer, err := env.TransferUC.TransferMoney(ctx, usecase.TransferMoneyInput{
		SenderID:    admin.ID,
		RecipientID: rider.ID,
		Amount:      decimal.NewFromInt(10000),
		Narration:   "delivery payout",
	})
	if err != nil {
		t.Fatalf("failed to create transfer: %v", err)
	}

	events, err := env.OutboxRepo.GetUnpublished(ctx, 10)
	if err != nil {
		t.Fatalf("failed to get unpublished events: %v", err)
	}
	if len(events) == 0 {
		t.Fatal("expected at least one unpublished event")
	}

	var transferEvent *domain.OutboxEvent
	for _, event := range events {
		if event.EventType == domain.EventTypeTransferCreated && event.AggregateID == transfer.ID {
			transferEvent = event
			break
		}
	}
	if transferEvent == nil {
		t.Fatal("transfer created event not found in outbox")
	}

	if transferEvent.AggregateType != domain.AggregateTypeTransfer {
		t.Errorf("expected aggregate type %s, got %s", domain.AggregateTypeTransfer, transferEvent.AggregateType)
	}
	if transferEvent.Published {
		t.Error("event should not be published yet")
	}
	if transferEvent.Payload == nil {
		t.Fatal("event payload is nil")
	}

	if transferEvent.Payload["transfer_id"] != transfer.ID {
		t.Errorf("payload transfer_id mismatch: expected %s, got %v", transfer.ID, transferEvent.Payload["transfer_id"])
	}
	if transferEvent.Payload["sender_id"] != admin.ID {
		t.Errorf("payload sender_id mismatch")
	}
	if transferEvent.Payload["recipient_id"] != rider.ID {
		t.Errorf("payload recipient_id mismatch")
	}
	if transferEvent.Payload["currency"] != "NGN" {
		t.Errorf("payload currency mismatch: got %v", transferEvent.Payload["currency"])
	}
}

func TestEventPublisherDrainsOutbox(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.DB.CreateTestHolderWithBalance(ctx, domain.HolderTypePlatform, "FleetPay", "NGN", decimal.NewFromInt(50000), true)
	rider := env.DB.CreateTestHolder(ctx, domain.HolderTypeRider, "Ade", "NGN", false)

	_, err := env.TransferUC.TransferMoney(ctx, usecase.TransferMoneyInput{
		SenderID:    admin.ID,
		RecipientID: rider.ID,
		Amount:      decimal.NewFromInt(10000),
		Narration:   "delivery payout",
	})
	if err != nil {
		t.Fatalf("failed to create transfer: %v", err)
	}

	sink := &recordingPublisher{}
	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: env.OutboxRepo,
		Publisher:  sink,
		BatchSize:  10,
	})

	publisherCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	go publisher.Start(publisherCtx)

	// The publisher processes once on start
	time.Sleep(100 * time.Millisecond)

	published := sink.Published()
	if len(published) == 0 {
		t.Fatal("no events were published")
	}

	unpublished, err := env.OutboxRepo.GetUnpublished(ctx, 10)
	if err != nil {
		t.Fatalf("failed to get unpublished events: %v", err)
	}
	if len(unpublished) > 0 {
		t.Errorf("expected outbox drained, got %d unpublished events", len(unpublished))
	}
}

type recordingPublisher struct {
	mu        sync.Mutex
	published []*domain.OutboxEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, event *domain.OutboxEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, event)
	return nil
}

func (p *recordingPublisher) Published() []*domain.OutboxEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*domain.OutboxEvent{}, p.published...)
}
