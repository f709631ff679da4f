// Package fcm реализует клиент HTTP API Firebase Cloud Messaging
// для доставки push-уведомлений на устройства пользователей.
package fcm

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// Client — клиент FCM. Учётные данные передаются при создании,
// их получение и ротация — вне зоны ответственности сервиса.
type Client struct {
	serverKey  string
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент FCM с серверным ключом.
func NewClient(serverKey string) *Client {
	return &Client{
		serverKey:  serverKey,
		apiURL:     "https://fcm.googleapis.com/fcm/send",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send отправляет push-уведомление на устройство по его токену.
func (c *Client) Send(token, title, body string) error {
	payload := sendRequest{
		To: token,
		Notification: notification{
			Title: title,
			Body:  body,
			Sound: "default",
		},
		Priority: "high",
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return err
	}
	req, err := http.NewRequest("POST", c.apiURL, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "key="+c.serverKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.New("unexpected status: " + resp.Status)
	}

	var result sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}
	if result.Failure > 0 {
		return errors.New("fcm rejected the message")
	}
	return nil
}
