package save

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"recipe-app-api/internal/pkg/common"
)

// Record 使用者收藏的一筆食譜
type Record struct {
	Username     string   `json:"username" binding:"required"`
	RecipeName   string   `json:"recipe_name" binding:"required"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Servings     string   `json:"servings"`
	Difficulty   string   `json:"difficulty"`
	CookTime     string   `json:"cook_time"`
	ImageURL     string   `json:"image_url"`
}

// Store 程序內的收藏食譜儲存
// 以小寫使用者名稱為鍵，只允許固定白名單中的使用者
// 不持久化：資料在程序重啟時消失
type Store struct {
	mu         sync.RWMutex
	validUsers map[string]bool
	recipes    map[string][]Record
}

// NewStore 創建收藏儲存，預先替白名單使用者開好空清單
func NewStore(validUsers []string) *Store {
	s := &Store{
		validUsers: make(map[string]bool, len(validUsers)),
		recipes:    make(map[string][]Record, len(validUsers)),
	}
	for _, u := range validUsers {
		key := strings.ToLower(u)
		s.validUsers[key] = true
		s.recipes[key] = []Record{}
	}
	return s
}

// Save 收藏一筆食譜，同一使用者下食譜名稱不分大小寫不得重複
func (s *Store) Save(record Record) error {
	userKey := strings.ToLower(record.Username)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.validUsers[userKey] {
		return common.NewError(common.ErrCodeNotFound,
			fmt.Sprintf("User '%s' not found or is not allowed to save recipes.", record.Username),
			http.StatusNotFound, nil)
	}

	nameKey := strings.ToLower(record.RecipeName)
	for _, saved := range s.recipes[userKey] {
		if strings.ToLower(saved.RecipeName) == nameKey {
			return common.NewError(common.ErrCodeConflict,
				fmt.Sprintf("Recipe '%s' is already in your favorites.", record.RecipeName),
				http.StatusConflict, nil)
		}
	}

	s.recipes[userKey] = append(s.recipes[userKey], record)
	return nil
}

// List 列出使用者的所有收藏，尚未收藏任何食譜時回傳空清單
func (s *Store) List(username string) ([]Record, error) {
	userKey := strings.ToLower(username)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.validUsers[userKey] {
		return nil, common.NewError(common.ErrCodeNotFound,
			fmt.Sprintf("User '%s' not found.", username), http.StatusNotFound, nil)
	}

	records := s.recipes[userKey]
	out := make([]Record, len(records))
	copy(out, records)
	return out, nil
}

// Delete 移除第一筆名稱相符（不分大小寫）的收藏
func (s *Store) Delete(username, recipeName string) error {
	userKey := strings.ToLower(username)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.validUsers[userKey] {
		return common.NewError(common.ErrCodeNotFound,
			fmt.Sprintf("User '%s' not found.", username), http.StatusNotFound, nil)
	}

	records, ok := s.recipes[userKey]
	if !ok {
		return common.NewError(common.ErrCodeNotFound,
			"User has no saved recipes.", http.StatusNotFound, nil)
	}

	nameKey := strings.ToLower(recipeName)
	for i, saved := range records {
		if strings.ToLower(saved.RecipeName) == nameKey {
			s.recipes[userKey] = append(records[:i], records[i+1:]...)
			return nil
		}
	}

	return common.NewError(common.ErrCodeNotFound,
		fmt.Sprintf("Recipe '%s' not found in your favorites.", recipeName),
		http.StatusNotFound, nil)
}
