// Package catalog содержит статические данные витрины: пакеты UC, способы оплаты и FAQ.
package catalog

import "github.com/mmeshcher/ucstore/internal/model"

var packages = []model.Package{
	{ID: 1, UC: 60, Price: 75, Bonus: 0, Popular: false},
	{ID: 2, UC: 325, Price: 375, Bonus: 25, Popular: true},
	{ID: 3, UC: 660, Price: 750, Bonus: 60, Popular: false},
	{ID: 4, UC: 1800, Price: 1875, Bonus: 300, Popular: false},
	{ID: 5, UC: 3850, Price: 3750, Bonus: 850, Popular: false},
}

var paymentMethods = []model.PaymentMethod{
	{ID: 1, Name: "Bank card", Icon: "CreditCard", Description: "Visa, MasterCard, MIR"},
	{ID: 2, Name: "SBP", Icon: "Smartphone", Description: "Faster Payments System"},
	{ID: 3, Name: "E-wallets", Icon: "Wallet", Description: "YooMoney, QIWI"},
	{ID: 4, Name: "Crypto", Icon: "Bitcoin", Description: "BTC, ETH, USDT"},
}

var faq = []model.FaqItem{
	{
		ID:       1,
		Question: "How fast does UC arrive?",
		Answer:   "UC is credited right after payment, usually within 1-5 minutes.",
	},
	{
		ID:       2,
		Question: "Is the purchase safe?",
		Answer:   "Yes, we only use official top-up methods. Your account stays safe.",
	},
	{
		ID:       3,
		Question: "Do you need my account password?",
		Answer:   "No! Your Player ID is all we need to top up.",
	},
	{
		ID:       4,
		Question: "What if UC did not arrive?",
		Answer:   "Contact support via Telegram or WhatsApp and we will sort it out within 15 minutes.",
	},
	{
		ID:       5,
		Question: "Is there a guarantee?",
		Answer:   "Yes, every purchase is 100% guaranteed. If something goes wrong we refund the money.",
	},
}

// Packages возвращает копию списка пакетов UC в порядке показа.
func Packages() []model.Package {
	out := make([]model.Package, len(packages))
	copy(out, packages)
	return out
}

// PaymentMethods возвращает копию списка способов оплаты.
func PaymentMethods() []model.PaymentMethod {
	out := make([]model.PaymentMethod, len(paymentMethods))
	copy(out, paymentMethods)
	return out
}

// Faq возвращает копию списка вопросов и ответов.
func Faq() []model.FaqItem {
	out := make([]model.FaqItem, len(faq))
	copy(out, faq)
	return out
}

// Lookup ищет пакет по идентификатору.
func Lookup(id int) (model.Package, bool) {
	for _, p := range packages {
		if p.ID == id {
			return p, true
		}
	}
	return model.Package{}, false
}
