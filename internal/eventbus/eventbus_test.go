package eventbus

import (
	"testing"

	"github.com/maelc07/gridsig/core/model"
)

func TestBusPublishSubscribe(t *testing.T) {
	bus := New[model.FeatureVector]()
	ch := bus.Subscribe()
	bus.Publish(model.FeatureVector{RMSVoltage: 0.7071, AnomalyType: model.AnomalyNone})
	fv := <-ch
	if fv.RMSVoltage != 0.7071 {
		t.Fatalf("got %+v", fv)
	}
	bus.Unsubscribe(ch)
}

func TestBusClose(t *testing.T) {
	bus := New[int]()
	ch1 := bus.Subscribe()
	ch2 := bus.Subscribe()
	bus.Close()
	if _, ok := <-ch1; ok {
		t.Fatalf("expected ch1 closed")
	}
	if _, ok := <-ch2; ok {
		t.Fatalf("expected ch2 closed")
	}
}

func TestBusSlowSubscriberDoesNotBlock(t *testing.T) {
	bus := New[int]()
	_ = bus.Subscribe()
	for i := 0; i < 100; i++ {
		bus.Publish(i) // fills the buffer, then drops
	}
	bus.Close()
}

func TestBusUnsubscribeAfterClose(t *testing.T) {
	bus := New[float64]()
	ch := bus.Subscribe()
	bus.Close()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panic on Unsubscribe after Close: %v", r)
		}
	}()
	bus.Unsubscribe(ch)
}
