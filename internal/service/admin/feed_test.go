package admin

import (
	"testing"

	"github.com/google/uuid"
)

func TestFeed_PublishReachesSubscriber(t *testing.T) {
	t.Parallel()

	feed := NewFeed()
	userID := uuid.New()

	ch, detach := feed.Subscribe(userID)
	defer detach()

	feed.Publish(userID)

	select {
	case <-ch:
	default:
		t.Fatal("subscriber must receive the published change")
	}
}

func TestFeed_PublishesCoalesce(t *testing.T) {
	t.Parallel()

	feed := NewFeed()
	userID := uuid.New()

	ch, detach := feed.Subscribe(userID)
	defer detach()

	feed.Publish(userID)
	feed.Publish(userID)
	feed.Publish(userID)

	<-ch
	select {
	case <-ch:
		t.Fatal("undrained publishes must coalesce into one signal")
	default:
	}
}

func TestFeed_ScopedToUser(t *testing.T) {
	t.Parallel()

	feed := NewFeed()
	watched := uuid.New()

	ch, detach := feed.Subscribe(watched)
	defer detach()

	feed.Publish(uuid.New())

	select {
	case <-ch:
		t.Fatal("a change for another user must not wake this subscriber")
	default:
	}
}

func TestFeed_DetachClosesChannel(t *testing.T) {
	t.Parallel()

	feed := NewFeed()
	userID := uuid.New()

	ch, detach := feed.Subscribe(userID)
	detach()

	if _, open := <-ch; open {
		t.Fatal("detach must close the subscription channel")
	}

	// Publishing after detach must not panic or block.
	feed.Publish(userID)

	// Detach is idempotent.
	detach()
}

func TestFeed_MultipleSubscribers(t *testing.T) {
	t.Parallel()

	feed := NewFeed()
	userID := uuid.New()

	ch1, detach1 := feed.Subscribe(userID)
	defer detach1()
	ch2, detach2 := feed.Subscribe(userID)
	defer detach2()

	feed.Publish(userID)

	for i, ch := range []<-chan struct{}{ch1, ch2} {
		select {
		case <-ch:
		default:
			t.Errorf("subscriber %d missed the change", i+1)
		}
	}
}
