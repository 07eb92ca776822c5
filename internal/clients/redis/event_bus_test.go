package redis

import (
	"testing"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/marketplace-backend/internal/platform/logger"
)

func TestNewEventBusRequiresDeps(t *testing.T) {
	if _, err := NewEventBus(nil, nil, ""); err == nil {
		t.Fatalf("NewEventBus: expected error without logger")
	}
	if _, err := NewEventBus(logger.Nop(), nil, ""); err == nil {
		t.Fatalf("NewEventBus: expected error without client")
	}
	rdb := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"})
	defer rdb.Close()
	bus, err := NewEventBus(logger.Nop(), rdb, "  ")
	if err != nil {
		t.Fatalf("NewEventBus: %v", err)
	}
	if got := bus.(*eventBus).channel; got != "marketplace.orders" {
		t.Fatalf("default channel: want=marketplace.orders got=%q", got)
	}
}

func TestNewClientRequiresAddr(t *testing.T) {
	if _, err := NewClient(nil, " "); err == nil {
		t.Fatalf("NewClient: expected error for empty addr")
	}
}
