package entity

// View is the ordered list of transactions a front-end displays. It is owned
// by the caller and handed to the mutation use cases by pointer.
type View []Transaction

func (v *View) Prepend(t Transaction) {
	*v = append(View{t}, *v...)
}

// Replace swaps the entry with t.ID for t and reports whether one was found.
func (v *View) Replace(t Transaction) bool {
	for i := range *v {
		if (*v)[i].ID == t.ID {
			(*v)[i] = t
			return true
		}
	}
	return false
}

func (v *View) Remove(id string) bool {
	for i := range *v {
		if (*v)[i].ID == id {
			*v = append((*v)[:i:i], (*v)[i+1:]...)
			return true
		}
	}
	return false
}

func (v *View) Set(txns []Transaction) {
	*v = append(View(nil), txns...)
}

func (v View) Find(id string) (Transaction, bool) {
	for _, t := range v {
		if t.ID == id {
			return t, true
		}
	}
	return Transaction{}, false
}

func (v View) Clone() []Transaction {
	return append([]Transaction{}, v...)
}
