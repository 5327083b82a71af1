package policy

import "container/list"

// tagOrder maintains an explicit ordering over tracked tags. The list runs
// from oldest (front) to newest (back); the map gives O(1) access to a
// tag's list position.
type tagOrder struct {
	order *list.List
	elems map[uint64]*list.Element
}

func newTagOrder() tagOrder {
	return tagOrder{
		order: list.New(),
		elems: make(map[uint64]*list.Element),
	}
}

func (o *tagOrder) Add(tag uint64) {
	o.elems[tag] = o.order.PushBack(tag)
}

func (o *tagOrder) Remove(tag uint64) {
	if e, ok := o.elems[tag]; ok {
		o.order.Remove(e)
		delete(o.elems, tag)
	}
}

func (o *tagOrder) Victim() (uint64, bool) {
	front := o.order.Front()
	if front == nil {
		return 0, false
	}
	return front.Value.(uint64), true
}

// lru orders tags by use: an access promotes the tag to the newest end, so
// the front of the list is always the least recently used tag.
type lru struct {
	tagOrder
}

func (p *lru) Access(tag uint64) {
	if e, ok := p.elems[tag]; ok {
		p.order.MoveToBack(e)
	}
}

// fifo orders tags by insertion only. Accesses never reorder entries.
type fifo struct {
	tagOrder
}

func (p *fifo) Access(tag uint64) {}
