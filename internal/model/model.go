// Package model содержит доменные сущности витрины UC.
package model

// Package описывает пакет UC, доступный для покупки.
type Package struct {
	ID      int  `json:"id"`
	UC      int  `json:"uc"`
	Price   int  `json:"price"`
	Bonus   int  `json:"bonus"`
	Popular bool `json:"popular"`
}

// Total возвращает количество UC с учётом бонуса.
func (p Package) Total() int {
	return p.UC + p.Bonus
}

// PaymentMethod описывает способ оплаты, показываемый на витрине.
type PaymentMethod struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// FaqItem описывает вопрос и ответ из раздела поддержки.
type FaqItem struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Contacts содержит контакты службы поддержки.
type Contacts struct {
	TelegramContact string `json:"telegram_contact"`
	WhatsappContact string `json:"whatsapp_contact"`
}

// DefaultContacts возвращает контакты, действующие до загрузки настроек.
func DefaultContacts() Contacts {
	return Contacts{
		TelegramContact: "https://t.me/ucstore_support",
		WhatsappContact: "https://wa.me/79990000000",
	}
}

// OrderDraft описывает черновик заказа в открытом диалоге.
type OrderDraft struct {
	SelectedPackageID  *int
	PlayerID           string
	ValidationError    string
	SubmissionInFlight bool
}

// NoticeKind описывает тип уведомления для посетителя.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice описывает разовое уведомление, показываемое при следующей отрисовке страницы.
type Notice struct {
	Kind NoticeKind
	Text string
}
