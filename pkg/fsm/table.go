package fsm

import (
	"context"
	"slices"

	"github.com/dbca-wa/wastd/pkg/audit"
	"github.com/felixgeelhaar/statekit"
)

// statekit identifiers are untyped constants so they convert to the
// library's own identifier types.
const (
	machineID   = "workflow"
	gateGuard   = "gate"
	auditAction = "recordTransition"
)

// Table is an immutable transition table. It is safe for concurrent use.
type Table struct {
	name        string
	initial     State
	states      []State
	transitions []Transition
	index       map[Operation]int

	// one compiled statechart per possible current state
	machines map[State]*statekit.MachineConfig[*run]
}

// run is the statechart context of a single Fire call.
type run struct {
	ctx   context.Context
	rec   Record
	actor string
	sink  audit.Sink
	from  State
	entry audit.Entry
	fired bool
	err   error
}

// NewTable validates the declaration and compiles it.
// Every source and target must be a declared state, operation names must
// be unique and the initial state must be declared.
func NewTable(
	name string,
	initial State,
	states []State,
	transitions []Transition,
) (*Table, error) {
	res := Table{
		name:        name,
		initial:     initial,
		states:      slices.Clone(states),
		transitions: slices.Clone(transitions),
		index:       make(map[Operation]int, len(transitions)),
		machines:    make(map[State]*statekit.MachineConfig[*run], len(states)),
	}

	if len(states) == 0 {
		return nil, TableError(name, "no states declared")
	}
	if !slices.Contains(states, initial) {
		return nil, TableError(name, "initial state is not declared")
	}

	for i, tr := range transitions {
		if tr.Operation == "" {
			return nil, TableError(name, "transition without operation name")
		}
		if _, ok := res.index[tr.Operation]; ok {
			return nil, TableError(name,
				"duplicate operation "+string(tr.Operation))
		}
		if !slices.Contains(states, tr.Target) {
			return nil, TableError(name,
				"unknown target state "+string(tr.Target))
		}
		for _, s := range tr.Sources {
			if !slices.Contains(states, s) {
				return nil, TableError(name,
					"unknown source state "+string(s))
			}
		}
		res.index[tr.Operation] = i
	}

	for _, s := range states {
		m, err := res.compile(s)
		if err != nil {
			return nil, TableError(name, err.Error())
		}
		res.machines[s] = m
	}

	return &res, nil
}

// MustTable is NewTable that panics on an invalid declaration.
// Use it for package-level tables.
func MustTable(
	name string,
	initial State,
	states []State,
	transitions []Transition,
) *Table {
	t, err := NewTable(name, initial, states, transitions)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the name of the workflow.
func (t *Table) Name() string {
	return t.name
}

// Initial returns the state assigned to new records.
func (t *Table) Initial() State {
	return t.initial
}

// States returns all declared states in declaration order.
func (t *Table) States() []State {
	return slices.Clone(t.states)
}

// Transitions returns all transitions in declaration order.
func (t *Table) Transitions() []Transition {
	return slices.Clone(t.transitions)
}

// HasState reports whether s is a declared state.
func (t *Table) HasState(s State) bool {
	return slices.Contains(t.states, s)
}

// Lookup finds a transition by its operation name.
func (t *Table) Lookup(op Operation) (Transition, bool) {
	i, ok := t.index[op]
	if !ok {
		return Transition{}, false
	}
	return t.transitions[i], true
}

// Allows reports whether op is legal from the given state.
// Gates are not evaluated.
func (t *Table) Allows(op Operation, from State) bool {
	tr, ok := t.Lookup(op)
	if !ok {
		return false
	}
	return tr.Allows(from)
}

// Available returns operations that are legal from the given state,
// in declaration order. Gates are not evaluated.
func (t *Table) Available(from State) []Operation {
	var res []Operation
	for _, tr := range t.transitions {
		if tr.Allows(from) {
			res = append(res, tr.Operation)
		}
	}
	return res
}

// Reachable returns all states reachable from the given state by
// a finite sequence of legal transitions, the state itself excluded
// unless a cycle leads back to it.
func (t *Table) Reachable(from State) []State {
	seen := make(map[State]bool)
	queue := []State{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, tr := range t.transitions {
			if !tr.Allows(cur) || seen[tr.Target] {
				continue
			}
			seen[tr.Target] = true
			queue = append(queue, tr.Target)
		}
	}

	var res []State
	for _, s := range t.states {
		if seen[s] {
			res = append(res, s)
		}
	}
	return res
}

// Fire executes op on the record.
//
// On success the record is in the target state, one audit entry was
// appended to the sink, and the entry is returned. On failure the record
// is unchanged and nothing was appended. The record is never persisted.
func (t *Table) Fire(
	ctx context.Context,
	rec Record,
	op Operation,
	actor string,
	sink audit.Sink,
) (audit.Entry, error) {
	from := rec.CurrentState()
	tr, ok := t.Lookup(op)
	if !ok || !tr.Allows(from) {
		return audit.Entry{}, NotAllowedError(rec, op)
	}

	machine, ok := t.machines[from]
	if !ok {
		// status holds a value the table does not know about
		return audit.Entry{}, NotAllowedError(rec, op)
	}

	r := &run{
		ctx:   ctx,
		rec:   rec,
		actor: actor,
		sink:  sink,
		from:  from,
	}
	interp := statekit.NewInterpreter(machine)
	interp.UpdateContext(func(c **run) {
		*c = r
	})
	interp.Start()
	defer interp.Stop()

	interp.Send(statekit.Event{
		Type:    statekit.EventType(op),
		Payload: tr,
	})

	if r.err != nil {
		return audit.Entry{}, AuditError(rec, op, r.err)
	}
	if !r.fired {
		return audit.Entry{}, GateFailedError(rec, op)
	}

	rec.SetState(tr.Target)
	return r.entry, nil
}

// compile builds the statechart used when a record is in state `current`.
// Every state gets its outgoing transitions, each guarded by the gate of
// the transition and recording the audit entry as its action.
func (t *Table) compile(current State) (*statekit.MachineConfig[*run], error) {
	mb := statekit.NewMachine[*run](machineID).
		WithInitial(statekit.StateID(current)).
		WithContext(&run{}).
		WithAction(auditAction, recordTransition).
		WithGuard(gateGuard, checkGate)

	for _, s := range t.states {
		sb := mb.State(statekit.StateID(s))
		ops := t.Available(s)
		if len(ops) == 0 {
			mb = sb.Final().Done()
			continue
		}

		first, _ := t.Lookup(ops[0])
		tb := sb.On(statekit.EventType(first.Operation)).
			Target(statekit.StateID(first.Target)).
			Guard(gateGuard).
			Do(auditAction)
		for _, op := range ops[1:] {
			tr, _ := t.Lookup(op)
			tb = tb.On(statekit.EventType(tr.Operation)).
				Target(statekit.StateID(tr.Target)).
				Guard(gateGuard).
				Do(auditAction)
		}
		mb = tb.Done()
	}

	return mb.Build()
}

// checkGate evaluates the gate of the transition carried by the event.
func checkGate(r *run, event statekit.Event) bool {
	if r == nil || r.rec == nil {
		return false
	}
	tr, ok := event.Payload.(Transition)
	if !ok {
		return false
	}
	return tr.gate()(r.rec, r.actor)
}

// recordTransition appends the audit entry. The record state is changed by
// Fire only after the entry was stored.
func recordTransition(c **run, event statekit.Event) {
	if c == nil || *c == nil {
		return
	}
	r := *c
	tr, ok := event.Payload.(Transition)
	if !ok {
		return
	}

	entry := audit.NewEntry(
		r.rec.RecordKind(),
		r.rec.RecordID(),
		r.actor,
		string(r.from),
		string(tr.Target),
		string(tr.Operation),
	)
	if r.sink != nil {
		if err := r.sink.Record(r.ctx, entry); err != nil {
			r.err = err
			return
		}
	}
	r.entry = entry
	r.fired = true
}
