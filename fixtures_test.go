package statebox_test

import (
	"errors"

	"github.com/KhashayarRahimi/statebox"
)

type (
	// Order is the payload for the lifecycle fixtures
	Order struct {
		Symbol string `json:"symbol"`
		Qty    int    `json:"qty"`
	}

	// Account is the payload for the save/undo fixtures. Meta exists to
	// give snapshots a nested field worth deep-copying
	Account struct {
		Balance int               `json:"balance"`
		Meta    map[string]string `json:"meta,omitempty"`
	}
)

const (
	TagNew       statebox.Tag = "new"
	TagFilled    statebox.Tag = "filled"
	TagCancelled statebox.Tag = "cancelled"

	TagOpen   statebox.Tag = "open"
	TagClosed statebox.Tag = "closed"

	EventFill     statebox.EventType = "fill"
	EventCancel   statebox.EventType = "cancel"
	EventDeposit  statebox.EventType = "deposit"
	EventWithdraw statebox.EventType = "withdraw"
	EventClose    statebox.EventType = "close"
)

var errInsufficientFunds = errors.New("insufficient funds")

func orderRegistry() *statebox.Registry[Order] {
	b := statebox.NewBuilder[Order](TagNew)
	b.Tag(TagNew).
		On(EventFill, TagFilled).
		On(EventCancel, TagCancelled)
	b.Tag(TagFilled).
		On(EventCancel, TagCancelled)
	b.Tag(TagCancelled)

	reg, err := b.Build()
	if err != nil {
		panic(err)
	}
	return reg
}

func accountRegistry() *statebox.Registry[Account] {
	reg, err := statebox.NewRegistry(TagOpen,
		map[statebox.Tag][]statebox.Transition[Account]{
			TagOpen: {
				{On: EventDeposit, To: TagOpen, Effect: deposit},
				{On: EventWithdraw, To: TagOpen, Effect: withdraw},
				{On: EventClose, To: TagClosed},
			},
			TagClosed: {},
		},
	)
	if err != nil {
		panic(err)
	}
	return reg
}

func deposit(acct Account, evt statebox.Event) (Account, error) {
	acct.Balance += evt.Data.(int)
	return acct, nil
}

func withdraw(acct Account, evt statebox.Event) (Account, error) {
	amount := evt.Data.(int)
	if amount > acct.Balance {
		return acct, errInsufficientFunds
	}
	acct.Balance -= amount
	return acct, nil
}

func newOrderEntity() *statebox.Entity[Order] {
	e, err := statebox.NewEntity(
		orderRegistry(),
		Order{Symbol: "ACME", Qty: 100},
		statebox.Config[Order]{},
	)
	if err != nil {
		panic(err)
	}
	return e
}

func newAccountEntity() *statebox.Entity[Account] {
	e, err := statebox.NewEntity(
		accountRegistry(), Account{}, statebox.Config[Account]{},
	)
	if err != nil {
		panic(err)
	}
	return e
}

type recordingObserver struct {
	changes []*statebox.Change
	fail    error
}

func (o *recordingObserver) OnChange(ch *statebox.Change) error {
	o.changes = append(o.changes, ch)
	return o.fail
}
