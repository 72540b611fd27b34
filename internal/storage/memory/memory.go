// Package memory holds an in-memory ledger repository used by tests and
// by DATA_BACKEND=memory runs where persistence is not wanted.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/vinogum/telegram-bot/internal/core"
)

// Store implements storage.Repository in process memory.
type Store struct {
	mu     sync.Mutex
	chats  map[int64]core.Chat
	items  []core.Transaction
	nextID int64

	// Now is the clock for CreatedAt stamps; tests may replace it.
	Now func() time.Time
}

func New() *Store {
	return &Store{
		chats:  make(map[int64]core.Chat),
		nextID: 1,
		Now:    time.Now,
	}
}

func (s *Store) Close() error { return nil }

func (s *Store) GetOrCreateChat(_ context.Context, chatID int64, username string) (core.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if chat, ok := s.chats[chatID]; ok {
		return chat, nil
	}
	chat := core.Chat{ChatID: chatID, Username: username}
	s.chats[chatID] = chat
	return chat, nil
}

func (s *Store) CreateTransaction(_ context.Context, chatID int64, amount core.Money, kind core.Kind, note string) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := core.Transaction{
		ID:        s.nextID,
		ChatID:    chatID,
		Amount:    amount,
		Kind:      kind,
		Note:      note,
		CreatedAt: s.Now(),
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	s.nextID++
	s.items = append(s.items, tx)
	return tx, nil
}

func (s *Store) SumByKind(_ context.Context, chatID int64, kind core.Kind) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, tx := range s.items {
		if tx.ChatID == chatID && tx.Kind == kind {
			total += tx.Amount.Cents
		}
	}
	return total, nil
}

func (s *Store) Balance(ctx context.Context, chatID int64) (int64, error) {
	income, err := s.SumByKind(ctx, chatID, core.Income)
	if err != nil {
		return 0, err
	}
	expense, err := s.SumByKind(ctx, chatID, core.Expense)
	if err != nil {
		return 0, err
	}
	return income - expense, nil
}

func (s *Store) FindByID(_ context.Context, chatID, id int64) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(chatID, id); i >= 0 {
		return s.items[i], nil
	}
	return core.Transaction{}, core.ErrNotFound
}

func (s *Store) DeleteByID(_ context.Context, chatID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(chatID, id)
	if i < 0 {
		return core.ErrNotFound
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return nil
}

func (s *Store) UpdateTransaction(_ context.Context, chatID, id int64, patch core.TransactionPatch) (core.Transaction, error) {
	if err := patch.Validate(); err != nil {
		return core.Transaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(chatID, id)
	if i < 0 {
		return core.Transaction{}, core.ErrNotFound
	}
	if patch.Amount != nil {
		s.items[i].Amount = *patch.Amount
	}
	if patch.Kind != nil {
		s.items[i].Kind = *patch.Kind
	}
	if patch.Note != nil {
		s.items[i].Note = *patch.Note
	}
	return s.items[i], nil
}

func (s *Store) FindByChatAndRange(_ context.Context, chatID int64, start, end time.Time) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []core.Transaction
	for _, tx := range s.items {
		if tx.ChatID != chatID {
			continue
		}
		if tx.CreatedAt.Before(start) || tx.CreatedAt.After(end) {
			continue
		}
		result = append(result, tx)
	}
	return result, nil
}

// index must be called with the lock held.
func (s *Store) index(chatID, id int64) int {
	for i, tx := range s.items {
		if tx.ID == id && tx.ChatID == chatID {
			return i
		}
	}
	return -1
}
