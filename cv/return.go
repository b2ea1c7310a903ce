package cv

import "fmt"

// Return is a CVReturn status code. Every value other than ReturnSuccess is
// an error.
type Return int32

const (
	ReturnSuccess Return = 0

	ReturnError                          Return = -6660
	ReturnInvalidArgument                Return = -6661
	ReturnAllocationFailed               Return = -6662
	ReturnUnsupported                    Return = -6663
	ReturnInvalidDisplay                 Return = -6670
	ReturnDisplayLinkAlreadyRunning      Return = -6671
	ReturnDisplayLinkNotRunning          Return = -6672
	ReturnDisplayLinkCallbacksNotSet     Return = -6673
	ReturnInvalidPixelFormat             Return = -6680
	ReturnInvalidSize                    Return = -6681
	ReturnInvalidPixelBufferAttributes   Return = -6682
	ReturnPixelBufferNotOpenGLCompatible Return = -6683
	ReturnPixelBufferNotMetalCompatible  Return = -6684
	ReturnWouldExceedAllocationThreshold Return = -6689
	ReturnPoolAllocationFailed           Return = -6690
	ReturnInvalidPoolAttributes          Return = -6691
	ReturnRetry                          Return = -6692
)

var returnNames = map[Return]string{
	ReturnSuccess:                        "kCVReturnSuccess",
	ReturnError:                          "kCVReturnError",
	ReturnInvalidArgument:                "kCVReturnInvalidArgument",
	ReturnAllocationFailed:               "kCVReturnAllocationFailed",
	ReturnUnsupported:                    "kCVReturnUnsupported",
	ReturnInvalidDisplay:                 "kCVReturnInvalidDisplay",
	ReturnDisplayLinkAlreadyRunning:      "kCVReturnDisplayLinkAlreadyRunning",
	ReturnDisplayLinkNotRunning:          "kCVReturnDisplayLinkNotRunning",
	ReturnDisplayLinkCallbacksNotSet:     "kCVReturnDisplayLinkCallbacksNotSet",
	ReturnInvalidPixelFormat:             "kCVReturnInvalidPixelFormat",
	ReturnInvalidSize:                    "kCVReturnInvalidSize",
	ReturnInvalidPixelBufferAttributes:   "kCVReturnInvalidPixelBufferAttributes",
	ReturnPixelBufferNotOpenGLCompatible: "kCVReturnPixelBufferNotOpenGLCompatible",
	ReturnPixelBufferNotMetalCompatible:  "kCVReturnPixelBufferNotMetalCompatible",
	ReturnWouldExceedAllocationThreshold: "kCVReturnWouldExceedAllocationThreshold",
	ReturnPoolAllocationFailed:           "kCVReturnPoolAllocationFailed",
	ReturnInvalidPoolAttributes:          "kCVReturnInvalidPoolAttributes",
	ReturnRetry:                          "kCVReturnRetry",
}

func (r Return) String() string {
	if name, ok := returnNames[r]; ok {
		return name
	}
	return fmt.Sprintf("CVReturn(%d)", int32(r))
}

func (r Return) Error() string {
	return fmt.Sprintf("cv: %s (%d)", r.String(), int32(r))
}

// Err returns nil for ReturnSuccess and r otherwise.
func (r Return) Err() error {
	if r == ReturnSuccess {
		return nil
	}
	return r
}
