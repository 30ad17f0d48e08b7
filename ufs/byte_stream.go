package ufs

import "io"

type ByteStream struct {
	Data []byte
	P    int
}

func (s *ByteStream) Write(bs []byte) (int, error) {
	s.Data = append(s.Data, bs...)
	return len(bs), nil
}

func (s *ByteStream) Read(bs []byte) (int, error) {
	if s.P >= len(s.Data) {
		return 0, io.EOF
	}
	c := copy(bs, s.Data[s.P:])
	s.P += c
	return c, nil
}
