package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetpay/walletledger/internal/domain"
	"github.com/fleetpay/walletledger/internal/usecase"
)

// MockHolderRepository is a mock implementation of HolderRepository.
type MockHolderRepository struct {
	mu      sync.RWMutex
	holders map[string]*domain.Holder

	CreateFunc               func(ctx context.Context, holder *domain.Holder) error
	CreateTxFunc             func(ctx context.Context, tx usecase.Transaction, holder *domain.Holder) error
	GetByIDFunc              func(ctx context.Context, id string) (*domain.Holder, error)
	GetByIDForUpdateFunc     func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Holder, error)
	GetByIDsForUpdateFunc    func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Holder, error)
	UpdateBalanceFunc        func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	UpdatePendingBalanceFunc func(ctx context.Context, tx usecase.Transaction, id string, pendingBalance decimal.Decimal, updatedAt time.Time) error
	ListFunc                 func(ctx context.Context, holderType domain.HolderType, limit, offset int) ([]*domain.Holder, error)
}

func NewMockHolderRepository() *MockHolderRepository {
	return &MockHolderRepository{
		holders: make(map[string]*domain.Holder),
	}
}

// Add seeds a holder into the in-memory store.
func (m *MockHolderRepository) Add(holder *domain.Holder) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.holders[holder.ID] = holder
}

func (m *MockHolderRepository) Create(ctx context.Context, holder *domain.Holder) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, holder)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.holders[holder.ID] = holder
	return nil
}

func (m *MockHolderRepository) CreateTx(ctx context.Context, tx usecase.Transaction, holder *domain.Holder) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, holder)
	}
	return m.Create(ctx, holder)
}

func (m *MockHolderRepository) GetByID(ctx context.Context, id string) (*domain.Holder, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if h, ok := m.holders[id]; ok {
		return h, nil
	}
	return nil, domain.ErrHolderNotFound
}

func (m *MockHolderRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Holder, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockHolderRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Holder, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var holders []*domain.Holder
	for _, id := range ids {
		if h, ok := m.holders[id]; ok {
			holders = append(holders, h)
		}
	}
	return holders, nil
}

func (m *MockHolderRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if h, ok := m.holders[id]; ok {
		h.Balance = balance
		h.Version++
		h.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockHolderRepository) UpdatePendingBalance(ctx context.Context, tx usecase.Transaction, id string, pendingBalance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdatePendingBalanceFunc != nil {
		return m.UpdatePendingBalanceFunc(ctx, tx, id, pendingBalance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if h, ok := m.holders[id]; ok {
		h.PendingBalance = pendingBalance
		h.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockHolderRepository) List(ctx context.Context, holderType domain.HolderType, limit, offset int) ([]*domain.Holder, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, holderType, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var holders []*domain.Holder
	for _, h := range m.holders {
		if holderType == "" || h.Type == holderType {
			holders = append(holders, h)
		}
	}
	sort.Slice(holders, func(i, j int) bool { return holders[i].ID < holders[j].ID })
	return holders, nil
}

// MockTransferRepository is a mock implementation of TransferRepository.
type MockTransferRepository struct {
	mu        sync.RWMutex
	transfers map[string]*domain.Transfer

	CreateFunc       func(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error
	GetByIDFunc      func(ctx context.Context, id string) (*domain.Transfer, error)
	ListByHolderFunc func(ctx context.Context, holderID string, limit, offset int) ([]*domain.Transfer, error)
}

func NewMockTransferRepository() *MockTransferRepository {
	return &MockTransferRepository{
		transfers: make(map[string]*domain.Transfer),
	}
}

func (m *MockTransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, transfer)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transfers[transfer.ID] = transfer
	return nil
}

func (m *MockTransferRepository) GetByID(ctx context.Context, id string) (*domain.Transfer, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.transfers[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTransferNotFound
}

func (m *MockTransferRepository) ListByHolder(ctx context.Context, holderID string, limit, offset int) ([]*domain.Transfer, error) {
	if m.ListByHolderFunc != nil {
		return m.ListByHolderFunc(ctx, holderID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var transfers []*domain.Transfer
	for _, t := range m.transfers {
		if t.SenderID == holderID || t.RecipientID == holderID {
			transfers = append(transfers, t)
		}
	}
	return transfers, nil
}

// MockEntryRepository is a mock implementation of EntryRepository.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.Entry

	CreateFunc            func(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Entry, error)
	GetByTransferFunc     func(ctx context.Context, transferID string) ([]*domain.Entry, error)
	GetByHolderFunc       func(ctx context.Context, holderID string, limit, offset int) ([]*domain.Entry, error)
	UpdateStatusFunc      func(ctx context.Context, tx usecase.Transaction, id string, status domain.EntryStatus) error
	SumPostedByHolderFunc func(ctx context.Context, holderID string) (decimal.Decimal, error)
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{
		entries: make(map[string]*domain.Entry),
	}
}

// Add seeds an entry into the in-memory store.
func (m *MockEntryRepository) Add(entry *domain.Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = entry
}

func (m *MockEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = entry
	return nil
}

func (m *MockEntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (m *MockEntryRepository) GetByTransfer(ctx context.Context, transferID string) ([]*domain.Entry, error) {
	if m.GetByTransferFunc != nil {
		return m.GetByTransferFunc(ctx, transferID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.Entry
	for _, e := range m.entries {
		if e.TransferID == transferID {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

func (m *MockEntryRepository) GetByTransferTx(ctx context.Context, tx usecase.Transaction, transferID string) ([]*domain.Entry, error) {
	return m.GetByTransfer(ctx, transferID)
}

func (m *MockEntryRepository) GetByHolder(ctx context.Context, holderID string, limit, offset int) ([]*domain.Entry, error) {
	if m.GetByHolderFunc != nil {
		return m.GetByHolderFunc(ctx, holderID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.Entry
	for _, e := range m.entries {
		if e.HolderID == holderID {
			entries = append(entries, e)
		}
	}
	// newest first
	sort.Slice(entries, func(i, j int) bool { return entries[i].CreatedAt.After(entries[j].CreatedAt) })
	return entries, nil
}

func (m *MockEntryRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.EntryStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[id]; ok {
		e.Status = status
		return nil
	}
	return domain.ErrEntryNotFound
}

func (m *MockEntryRepository) SumPostedByHolder(ctx context.Context, holderID string) (decimal.Decimal, error) {
	if m.SumPostedByHolderFunc != nil {
		return m.SumPostedByHolderFunc(ctx, holderID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := decimal.Zero
	for _, e := range m.entries {
		if e.HolderID != holderID {
			continue
		}
		if e.Status != domain.EntryStatusSuccessful && e.Status != domain.EntryStatusReversed {
			continue
		}
		if e.Type == domain.EntryTypeCredit {
			sum = sum.Add(e.Amount)
		} else {
			sum = sum.Sub(e.Amount)
		}
	}
	return sum, nil
}

// MockWithdrawalRepository is a mock implementation of WithdrawalRepository.
type MockWithdrawalRepository struct {
	mu          sync.RWMutex
	withdrawals map[string]*domain.Withdrawal

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, withdrawal *domain.Withdrawal) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Withdrawal, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Withdrawal, error)
	UpdateStatusFunc     func(ctx context.Context, tx usecase.Transaction, id string, status domain.WithdrawalStatus, updatedAt time.Time) error
	ListByHolderFunc     func(ctx context.Context, holderID string, limit, offset int) ([]*domain.Withdrawal, error)
}

func NewMockWithdrawalRepository() *MockWithdrawalRepository {
	return &MockWithdrawalRepository{
		withdrawals: make(map[string]*domain.Withdrawal),
	}
}

func (m *MockWithdrawalRepository) Create(ctx context.Context, tx usecase.Transaction, withdrawal *domain.Withdrawal) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, withdrawal)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.withdrawals[withdrawal.ID] = withdrawal
	return nil
}

func (m *MockWithdrawalRepository) GetByID(ctx context.Context, id string) (*domain.Withdrawal, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if w, ok := m.withdrawals[id]; ok {
		return w, nil
	}
	return nil, domain.ErrWithdrawalNotFound
}

func (m *MockWithdrawalRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Withdrawal, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockWithdrawalRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.WithdrawalStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.withdrawals[id]; ok {
		w.Status = status
		w.UpdatedAt = updatedAt
		return nil
	}
	return domain.ErrWithdrawalNotFound
}

func (m *MockWithdrawalRepository) ListByHolder(ctx context.Context, holderID string, limit, offset int) ([]*domain.Withdrawal, error) {
	if m.ListByHolderFunc != nil {
		return m.ListByHolderFunc(ctx, holderID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var withdrawals []*domain.Withdrawal
	for _, w := range m.withdrawals {
		if w.HolderID == holderID {
			withdrawals = append(withdrawals, w)
		}
	}
	return withdrawals, nil
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent

	CreateFunc func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

// Events returns all recorded events.
func (m *MockOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.OutboxEvent(nil), m.events...)
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var unpublished []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published {
			unpublished = append(unpublished, e)
		}
		if len(unpublished) == limit {
			break
		}
	}
	return unpublished, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
			return nil
		}
	}
	return nil
}

func (m *MockOutboxRepository) GetByAggregate(ctx context.Context, aggregateType, aggregateID string, limit, offset int) ([]*domain.OutboxEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var events []*domain.OutboxEvent
	for _, e := range m.events {
		if e.AggregateType == aggregateType && e.AggregateID == aggregateID {
			events = append(events, e)
		}
	}
	return events, nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published || e.CreatedAt.After(before) {
			kept = append(kept, e)
		}
	}
	m.events = kept
	return nil
}

// MockLedgerRepository is a mock implementation of LedgerRepository.
type MockLedgerRepository struct {
	CheckConservationFunc func(ctx context.Context) (decimal.Decimal, decimal.Decimal, error)
}

func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{}
}

func (m *MockLedgerRepository) CheckConservation(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	if m.CheckConservationFunc != nil {
		return m.CheckConservationFunc(ctx)
	}
	return decimal.Zero, decimal.Zero, nil
}

// MockTransaction is a no-op transaction recording commit/rollback calls.
type MockTransaction struct {
	mu         sync.Mutex
	Committed  bool
	RolledBack bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "id-" + strconvItoa(m.counter)
}

func strconvItoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// MockCache is an in-memory Cache implementation.
type MockCache struct {
	mu    sync.RWMutex
	items map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{items: make(map[string][]byte)}
}

func (c *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if v, ok := c.items[key]; ok {
		return v, nil
	}
	return nil, nil
}

func (c *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return nil
}

func (c *MockCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

// MockIdempotencyStore is an in-memory IdempotencyStore implementation.
type MockIdempotencyStore struct {
	mu    sync.Mutex
	items map[string][]byte
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{items: make(map[string][]byte)}
}

func (s *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.items[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		s.items[key] = response
	} else {
		s.items[key] = []byte(usecase.IdempotencyProcessing)
	}
	return false, nil, nil
}

func (s *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = response
	return nil
}
