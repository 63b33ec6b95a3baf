/*
	arduino-flashrom
	Copyright (c) 2026 Arduino LLC.  All right reserved.

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU Affero General Public License as published
	by the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU Affero General Public License for more details.

	You should have received a copy of the GNU Affero General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package download

import (
	"bytes"
	"crypto"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	_ "crypto/md5"    // MD5 for VerifyFileChecksum
	_ "crypto/sha1"   // SHA-1 for VerifyFileChecksum
	_ "crypto/sha256" // SHA-256 for VerifyFileChecksum

	"github.com/arduino/go-paths-helper"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.bug.st/downloader/v2"
)

// Image describes a ROM image published at a URL.
type Image struct {
	URL      string
	Checksum string // ALGO:hex, empty to skip the check
	Size     int64  // 0 to skip the check
}

// Progress receives the number of bytes downloaded so far.
type Progress func(current int64)

// Fetch downloads the image into destDir and verifies it. The downloaded
// file is removed when the verification fails.
func Fetch(img *Image, destDir *paths.Path, progress Progress) (*paths.Path, error) {
	u, err := url.Parse(img.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid image URL: %q", img.URL)
	}
	name := path.Base(u.Path)
	if name == "" || name == "/" || name == "." {
		name = "image.bin"
	}
	if err := destDir.MkdirAll(); err != nil {
		return nil, errors.WithMessage(err, "creating download directory")
	}
	imagePath := destDir.Join(name)
	if err := imagePath.WriteFile(nil); err != nil {
		return nil, errors.WithMessage(err, "creating image file")
	}
	d, err := downloader.Download(imagePath.String(), img.URL)
	if err != nil {
		imagePath.Remove()
		return nil, errors.WithMessagef(err, "downloading %s", img.URL)
	}
	if err := Download(d, progress); err != nil {
		imagePath.Remove()
		return nil, err
	}
	if img.Checksum != "" {
		if err := VerifyFileChecksum(img.Checksum, imagePath); err != nil {
			imagePath.Remove()
			return nil, err
		}
	}
	if img.Size > 0 {
		if err := VerifyFileSize(img.Size, imagePath); err != nil {
			imagePath.Remove()
			return nil, err
		}
	}
	logrus.WithField("file", imagePath).Info("Image downloaded")
	return imagePath, nil
}

// Download runs d to completion, reporting the progress if a callback is given.
func Download(d *downloader.Downloader, progress Progress) error {
	if d == nil {
		// already downloaded
		return nil
	}
	var err error
	if progress != nil {
		err = d.RunAndPoll(func(current int64) { progress(current) }, 250*time.Millisecond)
	} else {
		err = d.Run()
	}
	if err != nil {
		return errors.WithMessagef(err, "failed to download file from %s", d.URL)
	}
	if d.Resp.StatusCode >= 400 && d.Resp.StatusCode <= 599 {
		return errors.Errorf("failed to download file from %s: %s", d.URL, d.Resp.Status)
	}
	return nil
}

// VerifyFileChecksum checks filePath against a checksum in the ALGO:hex form.
// Supported algorithms are SHA-256, SHA-1 and MD5.
func VerifyFileChecksum(checksum string, filePath *paths.Path) error {
	if checksum == "" {
		return errors.Errorf("missing checksum for: %s", filePath)
	}
	split := strings.SplitN(checksum, ":", 2)
	if len(split) != 2 {
		return errors.Errorf("invalid checksum format: %s", checksum)
	}
	digest, err := hex.DecodeString(split[1])
	if err != nil {
		return errors.WithMessagef(err, "invalid hash '%s'", split[1])
	}

	var algo hash.Hash
	switch strings.ToUpper(split[0]) {
	case "SHA-256":
		algo = crypto.SHA256.New()
	case "SHA-1":
		algo = crypto.SHA1.New()
	case "MD5":
		algo = crypto.MD5.New()
	default:
		return errors.Errorf("unsupported hash algorithm: %s", split[0])
	}

	file, err := filePath.Open()
	if err != nil {
		return errors.WithMessage(err, "opening file")
	}
	defer file.Close()
	if _, err := io.Copy(algo, file); err != nil {
		return errors.WithMessage(err, "computing hash")
	}
	if !bytes.Equal(algo.Sum(nil), digest) {
		return errors.Errorf("%s hash differs from the expected one", filePath.Base())
	}
	return nil
}

// VerifyFileSize checks that filePath is exactly size bytes long.
func VerifyFileSize(size int64, filePath *paths.Path) error {
	info, err := filePath.Stat()
	if err != nil {
		return errors.WithMessage(err, "getting file info")
	}
	if info.Size() != size {
		return errors.Errorf("%s is %d bytes, expected %d", filePath.Base(), info.Size(), size)
	}
	return nil
}
