package system

import (
	"image"
	"sync"
)

// GrayPool переиспользует буферы *image.Gray одного размера между кадрами,
// чтобы снизить нагрузку на GC.
type GrayPool struct {
	pools map[image.Point]*sync.Pool
	mu    sync.RWMutex
}

// NewGrayPool creates an empty pool.
func NewGrayPool() *GrayPool {
	return &GrayPool{pools: make(map[image.Point]*sync.Pool)}
}

var globalPool = NewGrayPool()

// GetGray возвращает буфер размера rect из общего пула. Содержимое
// буфера не определено.
func GetGray(rect image.Rectangle) *image.Gray {
	return globalPool.Get(rect)
}

// PutGray возвращает буфер в общий пул.
func PutGray(img *image.Gray) {
	globalPool.Put(img)
}

func (p *GrayPool) Get(rect image.Rectangle) *image.Gray {
	key := rect.Size()
	p.mu.RLock()
	pool, exists := p.pools[key]
	p.mu.RUnlock()

	if !exists {
		p.mu.Lock()
		// Double check
		pool, exists = p.pools[key]
		if !exists {
			pool = &sync.Pool{
				New: func() interface{} {
					return image.NewGray(image.Rectangle{Max: key})
				},
			}
			p.pools[key] = pool
		}
		p.mu.Unlock()
	}

	img := pool.Get().(*image.Gray)
	img.Rect = rect
	return img
}

func (p *GrayPool) Put(img *image.Gray) {
	if img == nil {
		return
	}
	key := img.Rect.Size()
	p.mu.RLock()
	pool, exists := p.pools[key]
	p.mu.RUnlock()

	if exists {
		pool.Put(img)
	}
}
