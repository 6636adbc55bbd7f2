package services

import (
	"testing"
	"time"
)

func TestPhoneLocks_SamePhoneSerializes(t *testing.T) {
	locks := NewPhoneLocks()
	unlock := locks.Lock("919900112233")

	acquired := make(chan struct{})
	go func() {
		second := locks.Lock("919900112233")
		close(acquired)
		second()
	}()

	select {
	case <-acquired:
		t.Fatalf("second lock on the same phone acquired while the first was held")
	case <-time.After(20 * time.Millisecond):
	}

	unlock()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatalf("second lock never acquired after release")
	}
}

func TestPhoneLocks_DistinctPhonesDoNotContend(t *testing.T) {
	locks := NewPhoneLocks()
	unlock := locks.Lock("919900112233")
	defer unlock()

	acquired := make(chan struct{})
	go func() {
		other := locks.Lock("918800114455")
		close(acquired)
		other()
	}()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatalf("a different phone should acquire immediately")
	}
}
