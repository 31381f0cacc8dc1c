package buckets

import "testing"

func TestBucketMemAdd(t *testing.T) {
	bucket := NewBucketMem(2)
	if !bucket.Add(7) {
		t.Error("should be able to add to an empty bucket")
	}
	if !bucket.Add(0) {
		t.Error("fingerprint 0 should be accepted")
	}
	if bucket.Add(9) {
		t.Error("shouldn't be able to add to a full bucket")
	}
	if bucket.Length() != 2 {
		t.Errorf("length should be 2, found %d", bucket.Length())
	}
	if bucket.IsFree() {
		t.Error("bucket should be full")
	}
	if !bucket.Lookup(0) || !bucket.Lookup(7) {
		t.Error("0 and 7 should be present in the bucket")
	}
}

func TestBucketMemRemove(t *testing.T) {
	bucket := NewBucketMem(4)
	bucket.Add(3)
	bucket.Add(5)
	bucket.Add(3)
	if !bucket.Remove(3) {
		t.Error("should be able to remove 3")
	}
	if bucket.Length() != 2 {
		t.Errorf("length should be 2, found %d", bucket.Length())
	}
	if !bucket.Lookup(3) {
		t.Error("second occurrence of 3 should still be present")
	}
	if bucket.Remove(42) {
		t.Error("shouldn't be able to remove 42")
	}
	if bucket.Length() != 2 {
		t.Errorf("length should still be 2, found %d", bucket.Length())
	}
	for _, fp := range bucket.Elements() {
		if fp != 3 && fp != 5 {
			t.Errorf("unexpected fingerprint %d in bucket", fp)
		}
	}
}

func TestBucketMemSwap(t *testing.T) {
	bucket := NewBucketMem(2)
	bucket.Add(1)
	bucket.Add(2)
	prev := bucket.Swap(1, 8)
	if prev != 2 {
		t.Errorf("swap should return 2, found %d", prev)
	}
	if bucket.At(1) != 8 {
		t.Errorf("slot 1 should hold 8, found %d", bucket.At(1))
	}
	if bucket.Length() != 2 {
		t.Errorf("swap shouldn't change length, found %d", bucket.Length())
	}
}

func TestBucketMemEqualsAndReset(t *testing.T) {
	a := NewBucketMem(3)
	b := NewBucketMem(3)
	a.Add(1)
	b.Add(1)
	if !a.Equals(b) {
		t.Error("buckets should be equal")
	}
	b.Add(2)
	if a.Equals(b) {
		t.Error("buckets shouldn't be equal")
	}
	b.Reset()
	if b.Length() != 0 || !b.IsFree() {
		t.Error("bucket should be empty after reset")
	}
}
