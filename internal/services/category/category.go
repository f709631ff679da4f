// Package services отдаёт статичный справочник категорий подписок.
package services

import "github.com/unsubapp/subtracker/internal/models"

var categories = []models.Category{
	{ID: "entertainment", Name: "Entertainment", Description: "Netflix, Spotify, YouTube Premium"},
	{ID: "productivity", Name: "Productivity", Description: "Notion, Microsoft 365, Slack"},
	{ID: "cloud-storage", Name: "Cloud Storage", Description: "iCloud, Google Drive, Dropbox"},
	{ID: "gaming", Name: "Gaming", Description: "PlayStation Plus, Xbox Game Pass"},
	{ID: "education", Name: "Education", Description: "Coursera, Udemy, Skillshare"},
	{ID: "news-media", Name: "News & Media", Description: "Medium, NYTimes, The Athletic"},
	{ID: "health-fitness", Name: "Health & Fitness", Description: "Peloton, MyFitnessPal, Nike+"},
	{ID: "finance", Name: "Finance", Description: "Bank xidmətləri, Investment apps"},
	{ID: "communication", Name: "Communication", Description: "Zoom Pro, WhatsApp Business"},
	{ID: "shopping", Name: "Shopping", Description: "Amazon Prime, Delivery apps"},
	{ID: "ai-tools", Name: "AI Tools", Description: "ChatGPT Plus, Jasper, Midjourney"},
	{ID: "other", Name: "Digər", Description: "Başqa xidmətlər"},
}

// CategoryService отдаёт справочник категорий.
type CategoryService struct{}

// NewCategoryService создает новый экземпляр CategoryService.
func NewCategoryService() *CategoryService {
	return &CategoryService{}
}

// List возвращает копию справочника категорий.
func (s *CategoryService) List() []models.Category {
	result := make([]models.Category, len(categories))
	copy(result, categories)
	return result
}
