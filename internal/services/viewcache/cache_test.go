package viewcache

import (
	"testing"
	"time"

	"receiptweb/internal/models"
)

func receipts(names ...string) []models.Receipt {
	out := make([]models.Receipt, len(names))
	for i, n := range names {
		out[i] = models.Receipt{ID: i + 1, SellerName: n}
	}
	return out
}

func TestReceiptsAreCopied(t *testing.T) {
	c := New(0)
	src := receipts("Lawson", "Aeon")
	c.PutReceipts("s1", Reports, src)
	src[0].SellerName = "mutated"

	set, ok := c.Receipts("s1", Reports)
	if !ok {
		t.Fatal("expected cached receipts")
	}
	if set.Receipts[0].SellerName != "Lawson" {
		t.Error("cache must not alias the caller's slice")
	}

	set.Receipts[1].SellerName = "mutated"
	again, _ := c.Receipts("s1", Reports)
	if again.Receipts[1].SellerName != "Aeon" {
		t.Error("readers must get a copy")
	}
}

func TestKindsAndSessionsAreIndependent(t *testing.T) {
	c := New(0)
	c.PutReceipts("s1", Reports, receipts("A"))

	if _, ok := c.Receipts("s1", AdminReceipts); ok {
		t.Error("admin list should be empty")
	}
	if _, ok := c.Receipts("s2", Reports); ok {
		t.Error("other session should see nothing")
	}
	if _, ok := c.Users("s1"); ok {
		t.Error("users were never stored")
	}
}

func TestRemoveReceipt(t *testing.T) {
	c := New(0)
	c.PutReceipts("s1", Reports, receipts("Lawson", "Aeon", "FamilyMart"))

	if !c.RemoveReceipt("s1", Reports, 2) {
		t.Fatal("expected receipt 2 to be removed")
	}
	if c.RemoveReceipt("s1", Reports, 2) {
		t.Error("second removal should report absence")
	}

	set, _ := c.Receipts("s1", Reports)
	if set.Len() != 2 || set.Contains(2) {
		t.Errorf("unexpected remaining set: %+v", set.Receipts)
	}
	if got := set.FilterBySeller("aeon").Len(); got != 0 {
		t.Errorf("deleted receipt reappeared through filter: %d rows", got)
	}
}

func TestRemoveReceiptsOwnedBy(t *testing.T) {
	c := New(0)
	list := receipts("Lawson", "Aeon", "FamilyMart")
	list[0].OwnerID = 2
	list[1].Owner = &models.User{ID: 2, Email: "alice@x"}
	list[2].OwnerID = 3
	c.PutReceipts("s1", AdminReceipts, list)

	if removed := c.RemoveReceiptsOwnedBy("s1", AdminReceipts, 2); removed != 2 {
		t.Fatalf("removed %d receipts, want 2", removed)
	}
	set, _ := c.Receipts("s1", AdminReceipts)
	if set.Len() != 1 || set.Receipts[0].SellerName != "FamilyMart" {
		t.Errorf("unexpected remaining set: %+v", set.Receipts)
	}

	if removed := c.RemoveReceiptsOwnedBy("s1", Reports, 3); removed != 0 {
		t.Errorf("uncached kind should remove nothing, got %d", removed)
	}
	if _, ok := c.Receipts("s1", Reports); ok {
		t.Error("removing from an uncached kind must not create it")
	}
}

func TestUsers(t *testing.T) {
	c := New(0)
	c.PutUsers("s1", []models.User{{ID: 1, Email: "a@x"}, {ID: 2, Email: "b@x"}})

	if !c.RemoveUser("s1", 1) {
		t.Fatal("expected user 1 removed")
	}
	users, ok := c.Users("s1")
	if !ok || users.Len() != 1 || users.Users[0].ID != 2 {
		t.Errorf("unexpected users: %+v", users)
	}

	c.PutUsers("s2", nil)
	if empty, ok := c.Users("s2"); !ok || empty.Len() != 0 {
		t.Error("an empty list is still a cached list")
	}
}

func TestSweepAndDrop(t *testing.T) {
	c := New(time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.PutReceipts("old", Reports, receipts("A"))
	now = now.Add(2 * time.Minute)
	c.PutReceipts("fresh", Reports, receipts("B"))

	if removed := c.Sweep(); removed != 1 {
		t.Errorf("Sweep removed %d, want 1", removed)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d", c.Len())
	}

	c.Drop("fresh")
	if c.Len() != 0 {
		t.Error("Drop should remove the session")
	}
}
