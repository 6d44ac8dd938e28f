// Package ws, WebSocket bağlantı yönetimi ve kullanıcıya özel event push'u.
//
// Hub bağlantıları userID bazlı tutar; service katmanı EventPublisher
// üzerinden "seni bir blog'da andılar" gibi bildirimleri iletir.
package ws

// Event, WebSocket üzerinden iletilen mesaj.
// Seq her outbound event'te artar; client eksik event'i buradan fark eder.
type Event struct {
	Op   string `json:"op"`
	Data any    `json:"d,omitempty"`
	Seq  int64  `json:"seq,omitempty"`
}

// Client → Server
const (
	OpHeartbeat = "heartbeat"
)

// Server → Client
const (
	OpHeartbeatAck = "heartbeat_ack"
	OpAtMeCreate   = "at_me_create" // Yeni @ ilişkisi — d: AtRelation
	OpAtMeCount    = "at_me_count"  // Okunmamış sayısı değişti — d: {count}
)

// AtMeCountData, OpAtMeCount payload'ı.
type AtMeCountData struct {
	Count int `json:"count"`
}
