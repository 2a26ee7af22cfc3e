package service

import (
	"testing"

	"pinory-system/internal/errs"
	"pinory-system/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type friendshipFixture struct {
	users       *fakeUserRepo
	friendships *fakeFriendshipRepo
	svc         *FriendshipService
}

func newFriendshipFixture(t *testing.T) *friendshipFixture {
	t.Helper()
	users := newFakeUserRepo()
	friendships := newFakeFriendshipRepo()
	return &friendshipFixture{
		users:       users,
		friendships: friendships,
		svc:         NewFriendshipService(friendships, users),
	}
}

func TestFriendshipRequest(t *testing.T) {
	t.Run("creates pending friendship", func(t *testing.T) {
		fx := newFriendshipFixture(t)
		a := fx.users.addUser("alice")
		b := fx.users.addUser("bob")

		f, err := fx.svc.Request(a.ID, b.ID)
		require.NoError(t, err)
		assert.Equal(t, model.FriendshipStatusPending, f.Status)
		assert.Equal(t, a.ID, f.RequesterID)
		assert.Equal(t, b.ID, f.AddresseeID)
	})

	t.Run("rejects self request", func(t *testing.T) {
		fx := newFriendshipFixture(t)
		a := fx.users.addUser("alice")

		_, err := fx.svc.Request(a.ID, a.ID)
		assert.ErrorIs(t, err, errs.ErrSelfRequest)
	})

	t.Run("rejects unknown addressee", func(t *testing.T) {
		fx := newFriendshipFixture(t)
		a := fx.users.addUser("alice")

		_, err := fx.svc.Request(a.ID, 99)
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("rejects duplicate pending request", func(t *testing.T) {
		fx := newFriendshipFixture(t)
		a := fx.users.addUser("alice")
		b := fx.users.addUser("bob")

		_, err := fx.svc.Request(a.ID, b.ID)
		require.NoError(t, err)
		_, err = fx.svc.Request(a.ID, b.ID)
		assert.ErrorIs(t, err, errs.ErrRequestAlreadySent)
	})

	t.Run("rejects reverse request while pending", func(t *testing.T) {
		fx := newFriendshipFixture(t)
		a := fx.users.addUser("alice")
		b := fx.users.addUser("bob")

		_, err := fx.svc.Request(a.ID, b.ID)
		require.NoError(t, err)
		// 反方向同样命中已有记录
		_, err = fx.svc.Request(b.ID, a.ID)
		assert.ErrorIs(t, err, errs.ErrRequestAlreadySent)
	})

	t.Run("rejects request between friends", func(t *testing.T) {
		fx := newFriendshipFixture(t)
		a := fx.users.addUser("alice")
		b := fx.users.addUser("bob")

		f, err := fx.svc.Request(a.ID, b.ID)
		require.NoError(t, err)
		_, err = fx.svc.Accept(f.ID, b.ID)
		require.NoError(t, err)

		_, err = fx.svc.Request(a.ID, b.ID)
		assert.ErrorIs(t, err, errs.ErrAlreadyFriends)
	})

	t.Run("blocked pair forbids requests", func(t *testing.T) {
		fx := newFriendshipFixture(t)
		a := fx.users.addUser("alice")
		b := fx.users.addUser("bob")

		_, err := fx.svc.Block(b.ID, a.ID)
		require.NoError(t, err)

		_, err = fx.svc.Request(a.ID, b.ID)
		assert.ErrorIs(t, err, errs.ErrRequestForbidden)
	})
}

func TestFriendshipStatus(t *testing.T) {
	t.Run("none without record", func(t *testing.T) {
		fx := newFriendshipFixture(t)
		a := fx.users.addUser("alice")
		b := fx.users.addUser("bob")

		status, err := fx.svc.Status(a.ID, b.ID)
		require.NoError(t, err)
		assert.Equal(t, model.FriendshipStatusNone, status)
	})

	t.Run("symmetric in both directions", func(t *testing.T) {
		fx := newFriendshipFixture(t)
		a := fx.users.addUser("alice")
		b := fx.users.addUser("bob")

		_, err := fx.svc.Request(a.ID, b.ID)
		require.NoError(t, err)

		forward, err := fx.svc.Status(a.ID, b.ID)
		require.NoError(t, err)
		backward, err := fx.svc.Status(b.ID, a.ID)
		require.NoError(t, err)
		assert.Equal(t, forward, backward)
		assert.Equal(t, model.FriendshipStatusPending, forward)
	})
}

func TestFriendshipAccept(t *testing.T) {
	t.Run("addressee accepts pending request", func(t *testing.T) {
		fx := newFriendshipFixture(t)
		a := fx.users.addUser("alice")
		b := fx.users.addUser("bob")

		f, err := fx.svc.Request(a.ID, b.ID)
		require.NoError(t, err)

		accepted, err := fx.svc.Accept(f.ID, b.ID)
		require.NoError(t, err)
		assert.Equal(t, model.FriendshipStatusAccepted, accepted.Status)

		status, err := fx.svc.Status(a.ID, b.ID)
		require.NoError(t, err)
		assert.Equal(t, model.FriendshipStatusAccepted, status)
	})

	t.Run("requester may not accept own request", func(t *testing.T) {
		fx := newFriendshipFixture(t)
		a := fx.users.addUser("alice")
		b := fx.users.addUser("bob")

		f, err := fx.svc.Request(a.ID, b.ID)
		require.NoError(t, err)

		_, err = fx.svc.Accept(f.ID, a.ID)
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("accept requires pending status", func(t *testing.T) {
		fx := newFriendshipFixture(t)
		a := fx.users.addUser("alice")
		b := fx.users.addUser("bob")

		f, err := fx.svc.Request(a.ID, b.ID)
		require.NoError(t, err)
		_, err = fx.svc.Accept(f.ID, b.ID)
		require.NoError(t, err)

		_, err = fx.svc.Accept(f.ID, b.ID)
		assert.ErrorIs(t, err, errs.ErrInvalidInput)
	})
}

func TestFriendshipRemove(t *testing.T) {
	t.Run("either party may remove accepted friendship", func(t *testing.T) {
		for _, actor := range []string{"requester", "addressee"} {
			fx := newFriendshipFixture(t)
			a := fx.users.addUser("alice")
			b := fx.users.addUser("bob")

			f, err := fx.svc.Request(a.ID, b.ID)
			require.NoError(t, err)
			_, err = fx.svc.Accept(f.ID, b.ID)
			require.NoError(t, err)

			actingID := a.ID
			if actor == "addressee" {
				actingID = b.ID
			}
			require.NoError(t, fx.svc.Remove(f.ID, actingID))

			status, err := fx.svc.Status(a.ID, b.ID)
			require.NoError(t, err)
			assert.Equal(t, model.FriendshipStatusNone, status)
		}
	})

	t.Run("removes pending request (reject)", func(t *testing.T) {
		fx := newFriendshipFixture(t)
		a := fx.users.addUser("alice")
		b := fx.users.addUser("bob")

		f, err := fx.svc.Request(a.ID, b.ID)
		require.NoError(t, err)
		require.NoError(t, fx.svc.Remove(f.ID, b.ID))

		// 删除后可重新发起请求
		_, err = fx.svc.Request(a.ID, b.ID)
		assert.NoError(t, err)
	})

	t.Run("third party may not remove", func(t *testing.T) {
		fx := newFriendshipFixture(t)
		a := fx.users.addUser("alice")
		b := fx.users.addUser("bob")
		c := fx.users.addUser("carol")

		f, err := fx.svc.Request(a.ID, b.ID)
		require.NoError(t, err)

		err = fx.svc.Remove(f.ID, c.ID)
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("unknown friendship returns not found", func(t *testing.T) {
		fx := newFriendshipFixture(t)
		a := fx.users.addUser("alice")

		err := fx.svc.Remove(42, a.ID)
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestFriendshipBlock(t *testing.T) {
	t.Run("overwrites existing relation", func(t *testing.T) {
		fx := newFriendshipFixture(t)
		a := fx.users.addUser("alice")
		b := fx.users.addUser("bob")

		_, err := fx.svc.Request(a.ID, b.ID)
		require.NoError(t, err)

		f, err := fx.svc.Block(b.ID, a.ID)
		require.NoError(t, err)
		assert.Equal(t, model.FriendshipStatusBlocked, f.Status)

		status, err := fx.svc.Status(a.ID, b.ID)
		require.NoError(t, err)
		assert.Equal(t, model.FriendshipStatusBlocked, status)
	})

	t.Run("blocking twice is a no-op", func(t *testing.T) {
		fx := newFriendshipFixture(t)
		a := fx.users.addUser("alice")
		b := fx.users.addUser("bob")

		first, err := fx.svc.Block(a.ID, b.ID)
		require.NoError(t, err)
		second, err := fx.svc.Block(a.ID, b.ID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("rejects self block", func(t *testing.T) {
		fx := newFriendshipFixture(t)
		a := fx.users.addUser("alice")

		_, err := fx.svc.Block(a.ID, a.ID)
		assert.ErrorIs(t, err, errs.ErrSelfRequest)
	})
}

func TestListFriends(t *testing.T) {
	fx := newFriendshipFixture(t)
	a := fx.users.addUser("alice")
	b := fx.users.addUser("bob")
	c := fx.users.addUser("carol")
	d := fx.users.addUser("dave")

	// a→b 已接受，c→a 已接受，a→d 仅pending
	f1, err := fx.svc.Request(a.ID, b.ID)
	require.NoError(t, err)
	_, err = fx.svc.Accept(f1.ID, b.ID)
	require.NoError(t, err)

	f2, err := fx.svc.Request(c.ID, a.ID)
	require.NoError(t, err)
	_, err = fx.svc.Accept(f2.ID, a.ID)
	require.NoError(t, err)

	_, err = fx.svc.Request(a.ID, d.ID)
	require.NoError(t, err)

	friendIDs, err := fx.svc.ListFriends(a.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{b.ID, c.ID}, friendIDs)
}
