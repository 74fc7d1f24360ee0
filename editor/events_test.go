package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopicDeliversInSubscriptionOrder(t *testing.T) {
	var topic Topic[int]
	var got []string

	topic.Subscribe(func(v int) { got = append(got, "first") })
	topic.Subscribe(func(v int) { got = append(got, "second") })
	topic.Publish(1)

	assert.Equal(t, []string{"first", "second"}, got)
	assert.Equal(t, 2, topic.Len())
}

func TestTopicUnsubscribe(t *testing.T) {
	var topic Topic[string]
	calls := 0
	sub := topic.Subscribe(func(string) { calls++ })

	topic.Publish("a")
	sub.Unsubscribe()
	sub.Unsubscribe()
	topic.Publish("b")

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, topic.Len())
}

func TestTopicUnsubscribeDuringPublish(t *testing.T) {
	var topic Topic[int]
	var second *Subscription
	calls := map[string]int{}

	topic.Subscribe(func(int) {
		calls["first"]++
		second.Unsubscribe()
	})
	second = topic.Subscribe(func(int) { calls["second"]++ })
	topic.Subscribe(func(int) { calls["third"]++ })

	topic.Publish(1)
	topic.Publish(2)

	assert.Equal(t, 2, calls["first"])
	assert.Equal(t, 0, calls["second"])
	assert.Equal(t, 2, calls["third"])
}

func TestTopicClose(t *testing.T) {
	var topic Topic[int]
	calls := 0
	topic.Subscribe(func(int) { calls++ })
	topic.Close()
	topic.Publish(1)

	late := topic.Subscribe(func(int) { calls++ })
	topic.Publish(2)
	late.Unsubscribe()

	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, topic.Len())
}

func TestNilSubscriptionIsInert(t *testing.T) {
	var sub *Subscription
	assert.NotPanics(t, sub.Unsubscribe)
}
