package models

// Asset is a picked image ready to be uploaded.
type Asset struct {
	FileName string
	MIMEType string
	Data     []byte
}

// Name returns FileName, defaulting to photo.jpg.
func (a Asset) Name() string {
	if a.FileName == "" {
		return "photo.jpg"
	}
	return a.FileName
}

// Type returns MIMEType, defaulting to image/jpeg.
func (a Asset) Type() string {
	if a.MIMEType == "" {
		return "image/jpeg"
	}
	return a.MIMEType
}
