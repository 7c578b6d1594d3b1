package events

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/yeremiapane/reservation-app/models"
)

// Event types
const (
	EventReservationCreate = "reservation_create"
	EventReservationUpdate = "reservation_update"
	EventTableCreate       = "table_create"
	EventTableUpdate       = "table_update"
	EventBlockCreate       = "block_create"
	EventBlockDelete       = "block_delete"
	EventWaitlistAdd       = "waitlist_add"
	EventWaitlistNotify    = "waitlist_notify"
	EventStaffNotif        = "staff_notification"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub menampung semua client dashboard (staff, manager, admin) dan
// menyiarkan perubahan reservasi/meja/blok/waitlist secara realtime.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient -> menambahkan connection ke set dengan role
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient -> melepaskan connection
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastReservationCreate -> reservasi baru masuk
func BroadcastReservationCreate(reservation models.Reservation) {
	broadcast(Message{Event: EventReservationCreate, Data: reservation})
}

// BroadcastReservationUpdate -> perubahan status/pembayaran reservasi
func BroadcastReservationUpdate(reservation models.Reservation) {
	broadcast(Message{Event: EventReservationUpdate, Data: reservation})
}

// BroadcastTableCreate -> meja baru dibuat
func BroadcastTableCreate(table models.Table) {
	broadcast(Message{Event: EventTableCreate, Data: table})
}

// BroadcastTableUpdate -> update status meja
func BroadcastTableUpdate(table models.Table) {
	broadcast(Message{Event: EventTableUpdate, Data: table})
}

// BroadcastBlockCreate -> slot waktu diblokir
func BroadcastBlockCreate(block models.BlockedSlot) {
	broadcast(Message{Event: EventBlockCreate, Data: block})
}

// BroadcastBlockDelete -> blok dihapus
func BroadcastBlockDelete(blockID uint) {
	broadcast(Message{Event: EventBlockDelete, Data: map[string]interface{}{"block_id": blockID}})
}

// BroadcastWaitlistAdd -> entri waitlist baru
func BroadcastWaitlistAdd(entry models.WaitlistEntry) {
	broadcast(Message{Event: EventWaitlistAdd, Data: entry})
}

// BroadcastWaitlistNotify -> customer waitlist dipanggil
func BroadcastWaitlistNotify(entry models.WaitlistEntry) {
	broadcast(Message{Event: EventWaitlistNotify, Data: entry})
}

// BroadcastStaffNotification -> notifikasi umum untuk staff
func BroadcastStaffNotification(message string) {
	broadcast(Message{Event: EventStaffNotif, Data: message})
}

// BroadcastMessage -> broadcast pesan umum
func BroadcastMessage(msg Message) {
	broadcast(msg)
}

// broadcast -> fungsi internal untuk mengirim pesan ke semua client
func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending message to client: %v", err)
			continue
		}
	}
}
