package transaction

type ListTransactionResponse struct {
	Transactions []Transaction `json:"transactions"`
	TotalItems   int64         `json:"totalItems"`
}
