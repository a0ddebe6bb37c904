// SPDX-License-Identifier: Apache-2.0

package scsi

// Result is the tagged outcome of one command: success with data,
// success with no data transfer, or check condition with sense. The
// status byte is derivable from the tag alone.
type Result struct {
	data  []byte
	sense *SenseData
}

// Good returns a successful result carrying response data.
func Good(data []byte) Result {
	return Result{data: data}
}

// GoodNoData returns a successful result with no data transfer.
func GoodNoData() Result {
	return Result{}
}

// CheckCondition returns a failed result carrying sense data.
func CheckCondition(sense SenseData) Result {
	return Result{sense: &sense}
}

// Status returns the SCSI status byte for this outcome.
func (r Result) Status() uint8 {
	if r.sense != nil {
		return StatusCheckCondition
	}
	return StatusGood
}

// Data returns the response payload, nil for no-data and failed
// results.
func (r Result) Data() []byte {
	return r.data
}

// Sense returns the sense record when Status is CHECK CONDITION.
func (r Result) Sense() (SenseData, bool) {
	if r.sense == nil {
		return SenseData{}, false
	}
	return *r.sense, true
}
