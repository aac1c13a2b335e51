package lesson

import "combatbible/gymdesk/internal/domain"

// Transition returns the state that follows s on ev, plus the effects the
// caller must apply. Events that do not apply to s return s unchanged and no
// effects; that is how empty-plan submits and similar input guards are handled.
// Transition never mutates the slices held by s.
func Transition(s State, ev Event) (State, []Effect) {
	if _, ok := ev.(Reset); ok {
		return None{}, nil
	}
	switch st := s.(type) {
	case None:
		return fromNone(st, ev)
	case Planning:
		return fromPlanning(st, ev)
	case Reviewing:
		return fromReviewing(st, ev)
	case Ongoing:
		return fromOngoing(st, ev)
	case Completed:
		return fromCompleted(st, ev)
	}
	return None{}, nil
}

// Settle collapses the transient coach-side Completed into None. Student
// reports stay until dismissed.
func Settle(s State) State {
	if c, ok := s.(Completed); ok && !c.IsReport() {
		return None{}
	}
	return s
}

func fromNone(st None, ev Event) (State, []Effect) {
	switch e := ev.(type) {
	case SelectClass:
		draft := domain.ClonePlan(e.Draft)
		items := domain.ClonePlan(e.Draft)
		if items == nil {
			items = []domain.PlannedItem{}
		}
		return Planning{Klass: e.Klass, Date: e.Date, Items: items, Draft: draft}, nil
	case OpenFeedback:
		if len(e.Plan) == 0 {
			return st, nil
		}
		k := e.Klass
		return Ongoing{
			Klass: &k,
			Date:  e.Date,
			Plan:  domain.ClonePlan(e.Plan),
			Role:  domain.RoleStudent,
			Coach: e.Coach,
		}, nil
	case ShowReport:
		k := e.Klass
		plan := domain.ClonePlan(e.Plan)
		confirmed := append([]string{}, e.Confirmed...)
		missing := Deviations(plan, confirmed)
		if e.Missing != nil {
			missing = append([]string{}, e.Missing...)
		}
		return Completed{
			Klass: &k,
			Date:  e.Date,
			Plan:  plan,
			Report: &Report{
				ConfirmedIDs: confirmed,
				DeviationIDs: missing,
			},
		}, nil
	}
	return st, nil
}

func fromPlanning(st Planning, ev Event) (State, []Effect) {
	switch e := ev.(type) {
	case BackToSchedule:
		return None{}, nil
	case AddPack:
		if items, ok := addItem(st.Items, e.PackID); ok {
			st.Items = items
		}
		return st, nil
	case UpdateItem:
		if items, ok := updateItem(st.Items, e.PackID, e.Patch); ok {
			st.Items = items
		}
		return st, nil
	case ToggleAction:
		if items, ok := toggleAction(st.Items, e.PackID, e.ActionID); ok {
			st.Items = items
		}
		return st, nil
	case RemoveItem:
		if items, ok := removeItem(st.Items, e.PackID); ok {
			st.Items = items
		}
		return st, nil
	case SubmitPlan:
		if len(st.Items) == 0 {
			return st, nil
		}
		k := st.Klass
		return Reviewing{Klass: &k, Date: st.Date, Plan: domain.ClonePlan(st.Items)}, nil
	case ExecuteExisting:
		if !st.HasDraft() {
			return st, nil
		}
		k := st.Klass
		return Ongoing{Klass: &k, Date: st.Date, Plan: domain.ClonePlan(st.Draft), Role: domain.RoleCoach}, nil
	}
	return st, nil
}

func fromReviewing(st Reviewing, ev Event) (State, []Effect) {
	switch ev.(type) {
	case SaveDraft:
		return st, persist(st.Klass, st.Date, st.Plan)
	case Confirm:
		if len(st.Plan) == 0 {
			return st, nil
		}
		next := Ongoing{Klass: st.Klass, Date: st.Date, Plan: domain.ClonePlan(st.Plan), Role: domain.RoleCoach}
		return next, persist(st.Klass, st.Date, st.Plan)
	case ReturnToClass:
		return None{}, nil
	}
	return st, nil
}

func fromOngoing(st Ongoing, ev Event) (State, []Effect) {
	if _, ok := ev.(ReturnToClass); ok {
		return None{}, nil
	}
	if st.IsStudentForm() {
		e, ok := ev.(SubmitFeedback)
		if !ok {
			return st, nil
		}
		confirmed := e.Feedback.Confirmed(st.Plan)
		missing := Deviations(st.Plan, confirmed)
		next := Completed{
			Klass:  st.Klass,
			Date:   st.Date,
			Plan:   st.Plan,
			Report: &Report{ConfirmedIDs: confirmed, DeviationIDs: missing},
		}
		return next, []Effect{RecordFeedback{
			Klass:     st.Klass,
			Date:      st.Date,
			Plan:      domain.ClonePlan(st.Plan),
			Coach:     st.Coach,
			Feedback:  e.Feedback,
			Confirmed: append([]string{}, confirmed...),
			Missing:   append([]string{}, missing...),
		}}
	}

	switch e := ev.(type) {
	case AddPack:
		if items, ok := addItem(st.Plan, e.PackID); ok {
			st.Plan = items
		}
		return st, nil
	case UpdateItem:
		if items, ok := updateItem(st.Plan, e.PackID, e.Patch); ok {
			st.Plan = items
		}
		return st, nil
	case ToggleAction:
		if items, ok := toggleAction(st.Plan, e.PackID, e.ActionID); ok {
			st.Plan = items
		}
		return st, nil
	case RemoveItem:
		if items, ok := removeItem(st.Plan, e.PackID); ok {
			st.Plan = items
		}
		return st, nil
	case EndLesson:
		next := Completed{Klass: st.Klass, Date: st.Date, Plan: st.Plan}
		if st.Klass == nil {
			return next, nil
		}
		return next, []Effect{MarkCompleted{Klass: *st.Klass, Date: st.Date, Plan: domain.ClonePlan(st.Plan)}}
	}
	return st, nil
}

func fromCompleted(st Completed, ev Event) (State, []Effect) {
	if _, ok := ev.(DismissReport); ok {
		return None{}, nil
	}
	return st, nil
}

func persist(k *domain.Klass, date string, plan []domain.PlannedItem) []Effect {
	if k == nil {
		return nil
	}
	return []Effect{PersistPlan{Key: PlanKey{KlassID: k.ID, Date: date}, Plan: domain.ClonePlan(plan)}}
}

// --- plan item operations; each returns a fresh slice and whether anything changed ---

func indexOf(items []domain.PlannedItem, packID string) int {
	for i, it := range items {
		if it.PackID == packID {
			return i
		}
	}
	return -1
}

func addItem(items []domain.PlannedItem, packID string) ([]domain.PlannedItem, bool) {
	if packID == "" || indexOf(items, packID) >= 0 {
		return items, false
	}
	out := make([]domain.PlannedItem, 0, len(items)+1)
	out = append(out, domain.ClonePlan(items)...)
	return append(out, domain.NewPlannedItem(packID)), true
}

func updateItem(items []domain.PlannedItem, packID string, patch domain.ItemPatch) ([]domain.PlannedItem, bool) {
	i := indexOf(items, packID)
	if i < 0 {
		return items, false
	}
	out := domain.ClonePlan(items)
	out[i] = patch.Apply(out[i])
	return out, true
}

func toggleAction(items []domain.PlannedItem, packID, actionID string) ([]domain.PlannedItem, bool) {
	i := indexOf(items, packID)
	if i < 0 || actionID == "" {
		return items, false
	}
	out := domain.ClonePlan(items)
	ids := out[i].SelectedActionIDs
	kept := make([]string, 0, len(ids)+1)
	found := false
	for _, id := range ids {
		if id == actionID {
			found = true
			continue
		}
		kept = append(kept, id)
	}
	if !found {
		kept = append(kept, actionID)
	}
	out[i].SelectedActionIDs = kept
	return out, true
}

func removeItem(items []domain.PlannedItem, packID string) ([]domain.PlannedItem, bool) {
	i := indexOf(items, packID)
	if i < 0 {
		return items, false
	}
	out := make([]domain.PlannedItem, 0, len(items)-1)
	for j, it := range items {
		if j != i {
			out = append(out, it.Clone())
		}
	}
	return out, true
}
