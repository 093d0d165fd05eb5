package list_masters

// MasterResponse HTTP модель мастера
type MasterResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
