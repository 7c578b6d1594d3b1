package services

import "sync"

// RestaurantLocks menserialisasi operasi per restoran. Setiap operasi tulis
// (create reservation, set status meja, blok, waitlist) memegang lock
// eksklusif restoran tersebut supaya urutan cek-ketersediaan lalu commit
// tidak balapan dengan penulis lain (double booking). Query baca memakai
// RLock sehingga tetap bisa jalan paralel satu sama lain.
type RestaurantLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.RWMutex
}

func NewRestaurantLocks() *RestaurantLocks {
	return &RestaurantLocks{
		locks: make(map[uint]*sync.RWMutex),
	}
}

// Get mengembalikan lock untuk satu restoran, dibuat lazily
func (rl *RestaurantLocks) Get(restaurantID uint) *sync.RWMutex {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	lock, ok := rl.locks[restaurantID]
	if !ok {
		lock = &sync.RWMutex{}
		rl.locks[restaurantID] = lock
	}
	return lock
}
