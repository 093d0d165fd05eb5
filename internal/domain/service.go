package domain

// Service услуга барбершопа
// Принадлежит Booking API, клиент получает её только на чтение
type Service struct {
	ID              int64
	Name            string
	Description     string
	Price           int64 // рубли
	DurationMinutes int
}

// Master мастер барбершопа
type Master struct {
	ID       int64
	Username string
	Email    string
}
