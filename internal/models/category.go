package models

// Category — элемент неизменяемого справочника категорий подписок.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
