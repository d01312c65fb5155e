package mocks

// MockCodeEncoder implements domain.CodeEncoder for testing. The
// default encoding is a visible prefix so tests can assert on stored
// forms.
type MockCodeEncoder struct {
	EncodeFunc func(code string) (string, error)
	VerifyFunc func(code, encoded string) bool
}

// NewMockCodeEncoder creates a new MockCodeEncoder with default behaviors
func NewMockCodeEncoder() *MockCodeEncoder {
	return &MockCodeEncoder{}
}

// Encode encodes a code for storage
func (m *MockCodeEncoder) Encode(code string) (string, error) {
	if m.EncodeFunc != nil {
		return m.EncodeFunc(code)
	}
	return "encoded_" + code, nil
}

// Verify checks a code against its stored encoding
func (m *MockCodeEncoder) Verify(code, encoded string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(code, encoded)
	}
	return encoded == "encoded_"+code
}
