package auth

import (
	"fmt"
	"strings"
	"sync"
)

// User 使用者帳號，密碼以明文存放在記憶體中（沿用既有行為，無雜湊）
type User struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"-"`
}

// UserStore 使用者查詢與變更的抽象
// 目前只有記憶體實作，介面讓認證邏輯不必依賴儲存方式
type UserStore interface {
	FindByUsername(username string) (User, bool)
	FindByEmail(email string) (User, bool)
	// Replace 以 currentUsername 找到既有帳號並整筆覆寫
	// 使用者名稱變更時必須在同一個操作內換鍵，避免殘留舊鍵
	Replace(currentUsername string, updated User) error
}

// MemoryStore 記憶體使用者表，鍵為小寫使用者名稱
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]User
}

// NewMemoryStore 創建記憶體使用者表
func NewMemoryStore(seed ...User) *MemoryStore {
	s := &MemoryStore{
		users: make(map[string]User, len(seed)),
	}
	for _, u := range seed {
		s.users[strings.ToLower(u.Username)] = u
	}
	return s
}

// SeededStore 以寫死的單一帳號建立使用者表
func SeededStore() *MemoryStore {
	return NewMemoryStore(User{
		Username: "Estanislao",
		FullName: "Estanislao RNJL",
		Email:    "estanislao@example.com",
		Password: "Rnjl@1027",
	})
}

// FindByUsername 以使用者名稱查詢（不分大小寫）
func (s *MemoryStore) FindByUsername(username string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[strings.ToLower(username)]
	return u, ok
}

// FindByEmail 以 email 查詢（不分大小寫）
func (s *MemoryStore) FindByEmail(email string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return User{}, false
}

// Replace 覆寫帳號資料，名稱變更時在鎖內完成換鍵
func (s *MemoryStore) Replace(currentUsername string, updated User) error {
	oldKey := strings.ToLower(currentUsername)
	newKey := strings.ToLower(updated.Username)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[oldKey]; !ok {
		return fmt.Errorf("user %q not found", currentUsername)
	}

	if oldKey != newKey {
		delete(s.users, oldKey)
	}
	s.users[newKey] = updated
	return nil
}
