package models

// Balance is the derived net position of one person: positive means the
// group owes them money, negative means they owe the group. Balances are
// recomputed from the expense history, never stored independently.
type Balance struct {
	Name string `json:"name"`
	Net  Money  `json:"net"`
}

// Total is the amount a person has paid across all expenses (zero for a
// person who never paid).
type Total struct {
	Name  string `json:"name"`
	Spent Money  `json:"spent"`
}

// Transfer is a directed settlement payment from a debtor to a creditor.
// Transfers are the output of the settlement solver and are recomputed on
// demand, never persisted.
type Transfer struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount Money  `json:"amount"`
}
