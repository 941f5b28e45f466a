package userservice

import "strings"

// ClientProfile профиль клиента тренера из UserService
type ClientProfile struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  *string `json:"last_name,omitempty"`
	Nickname  *string `json:"nickname,omitempty"`
}

// DisplayName имя для сообщений о конфликтах и уведомлений
// Порядок: "Имя Фамилия", затем никнейм; пустая строка, если ничего не задано
func (p *ClientProfile) DisplayName() string {
	name := strings.TrimSpace(p.FirstName)
	if p.LastName != nil {
		name = strings.TrimSpace(name + " " + strings.TrimSpace(*p.LastName))
	}
	if name == "" && p.Nickname != nil {
		name = strings.TrimSpace(*p.Nickname)
	}
	return name
}
