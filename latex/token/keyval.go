// keyval.go -
// Copyright (C) 2016  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package token

// CsvList holds the elements of a comma separated list.
type CsvList []List

// SplitCsv splits a list at the commas which are not enclosed in
// braces.
func SplitCsv(list List) CsvList {
	var res CsvList
	var cur List
	for _, tok := range list {
		if tok.IsChar(',') && tok.Kind == Other {
			res = append(res, cur)
			cur = nil
			continue
		}
		cur = append(cur, tok)
	}
	if cur != nil || len(res) > 0 {
		res = append(res, cur)
	}
	return res
}

// Value returns element i with surrounding white space removed and one
// enclosing brace pair stripped.
func (csv CsvList) Value(i int) List {
	return csv[i].TrimSpace().Unwrap()
}

// Format converts the list back into TeX source text.
func (csv CsvList) Format() string {
	var res List
	for i, item := range csv {
		if i > 0 {
			res = append(res, NewOther(','))
		}
		res = append(res, item...)
	}
	return res.Format()
}

// KeyValList is an ordered map from keys to token lists, as used for
// "key=value" options.
type KeyValList struct {
	keys   []string
	values map[string]List
}

// ParseKeyVal parses a list of the form "key=value,key,...".  Keys
// without a value map to nil.
func ParseKeyVal(list List) *KeyValList {
	kv := &KeyValList{}
	for _, item := range SplitCsv(list) {
		item = item.TrimSpace()
		if len(item) == 0 {
			continue
		}
		var key, value List
		eq := -1
		for i, tok := range item {
			if tok.IsChar('=') {
				eq = i
				break
			}
		}
		if eq < 0 {
			key = item
		} else {
			key = item[:eq]
			value = item[eq+1:].TrimSpace().Unwrap()
		}
		kv.Set(key.TrimSpace().Format(), value)
	}
	return kv
}

// Set assigns a value to a key.  Existing keys keep their position.
func (kv *KeyValList) Set(key string, value List) {
	if kv.values == nil {
		kv.values = make(map[string]List)
	}
	if _, ok := kv.values[key]; !ok {
		kv.keys = append(kv.keys, key)
	}
	kv.values[key] = value
}

// Get returns the value for a key.
func (kv *KeyValList) Get(key string) (List, bool) {
	value, ok := kv.values[key]
	return value, ok
}

// Keys returns the keys in insertion order.
func (kv *KeyValList) Keys() []string {
	return kv.keys
}

// Len returns the number of keys.
func (kv *KeyValList) Len() int {
	return len(kv.keys)
}

// Format converts the list back into TeX source text.
func (kv *KeyValList) Format() string {
	var res List
	for i, key := range kv.keys {
		if i > 0 {
			res = append(res, NewOther(','))
		}
		res = append(res, String(key)...)
		if value := kv.values[key]; value != nil {
			res = append(res, NewOther('='))
			res = append(res, value...)
		}
	}
	return res.Format()
}
