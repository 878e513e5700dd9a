package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ListKind là loại list mà một movie có thể thuộc về
type ListKind string

const (
	KindWatchlist ListKind = "watchlist"
	KindWishlist  ListKind = "wishlist"
	KindCurated   ListKind = "curated"
)

// ParseListKind nhận giá trị từ query string (?list=)
func ParseListKind(s string) (ListKind, bool) {
	switch ListKind(s) {
	case KindWatchlist, KindWishlist, KindCurated:
		return ListKind(s), true
	default:
		return "", false
	}
}

// DisplayName dùng trong message trả về client
func (k ListKind) DisplayName() string {
	switch k {
	case KindCurated:
		return "curated list"
	default:
		return string(k)
	}
}

// ListTarget xác định list đích. CuratedListID chỉ có nghĩa khi Kind = curated
type ListTarget struct {
	Kind          ListKind
	CuratedListID uuid.UUID
}

func Watchlist() ListTarget { return ListTarget{Kind: KindWatchlist} }

func Wishlist() ListTarget { return ListTarget{Kind: KindWishlist} }

func CuratedList(id uuid.UUID) ListTarget {
	return ListTarget{Kind: KindCurated, CuratedListID: id}
}

func (t ListTarget) String() string {
	if t.Kind == KindCurated {
		return fmt.Sprintf("%s:%s", t.Kind, t.CuratedListID)
	}
	return string(t.Kind)
}

// Membership là một row trong watchlist_items / wishlist_items / curated_list_items
// Không bao giờ update: chỉ có hoặc không
type Membership struct {
	ID        uuid.UUID
	Target    ListTarget
	MovieID   uuid.UUID
	CreatedAt time.Time
}

// AddResult: Created = false nghĩa là movie đã có trong list
type AddResult struct {
	Created bool
}
