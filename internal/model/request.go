package model

// Request is a side-effect request produced by the command router. Requests
// are plain data so the collaborator store can apply them transactionally;
// the router never mutates storage itself.
type Request interface {
	// RequestName identifies the request type for logging.
	RequestName() string
}

// AccountCreationRequest onboards a brand-new sender with a fresh random
// credential and a zero initial balance.
type AccountCreationRequest struct {
	AccountID      string
	CanonicalKey   string
	Username       string
	PasswordHash   string
	InitialBalance int64
}

// RequestName implements Request.
func (AccountCreationRequest) RequestName() string { return "account_creation" }

// CredentialRotationRequest replaces the account password. The username and
// all transaction history are preserved.
type CredentialRotationRequest struct {
	AccountID    string
	PasswordHash string
}

// RequestName implements Request.
func (CredentialRotationRequest) RequestName() string { return "credential_rotation" }

// BalanceQueryRequest records that a balance summary was read. Applying it
// is a no-op; the router already fetched and formatted the sums.
type BalanceQueryRequest struct {
	AccountID string
}

// RequestName implements Request.
func (BalanceQueryRequest) RequestName() string { return "balance_query" }

// BalanceUpdateRequest sets the account's initial balance.
type BalanceUpdateRequest struct {
	AccountID string
	Amount    int64
}

// RequestName implements Request.
func (BalanceUpdateRequest) RequestName() string { return "balance_update" }

// TransactionCreateRequest appends one ledger entry.
type TransactionCreateRequest struct {
	TransactionID string
	AccountID     string
	Direction     Direction
	Description   string
	Category      string
	Source        string
	Amount        int64
}

// RequestName implements Request.
func (TransactionCreateRequest) RequestName() string { return "transaction_create" }
