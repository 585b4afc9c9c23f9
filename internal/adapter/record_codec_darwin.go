//go:build darwin && cgo

package adapter

/*
#cgo LDFLAGS: -framework CoreFoundation

#include <CoreFoundation/CoreFoundation.h>
#include <limits.h>
#include <stdlib.h>
#include <string.h>

enum {
	RA_RESOLVED    = 0,
	RA_HINT        = 1,
	RA_UNRESOLVED  = 2,
	RA_UNDECODABLE = 3,
};

enum {
	RA_CLASS_OTHER     = 0,
	RA_CLASS_FILE      = 1,
	RA_CLASS_DIR       = 2,
	RA_CLASS_PACKAGE   = 3,
	RA_CLASS_RECORD    = 4,
};

// Chosen once at codec construction; resolution never re-probes.
static CFStringRef ra_hint_key = NULL;

static CFURLRef ra_url(const char *path) {
	return CFURLCreateFromFileSystemRepresentation(
		kCFAllocatorDefault, (const UInt8 *)path, (CFIndex)strlen(path), false);
}

static char *ra_url_path(CFURLRef url) {
	char buf[PATH_MAX];
	if (!CFURLGetFileSystemRepresentation(url, true, (UInt8 *)buf, sizeof(buf))) {
		return NULL;
	}
	return strdup(buf);
}

// ra_probe_hint_key picks the resource key used to recover a stored path
// hint from bookmark data. kCFURLPathKey is weak-linked; older systems
// fall back to the private key name the bookmark payload carried there.
// Returns 1 when the modern key was selected.
static int ra_probe_hint_key(void) {
	if (&kCFURLPathKey != NULL) {
		ra_hint_key = kCFURLPathKey;
		return 1;
	}
	ra_hint_key = CFSTR("_NSURLPathKey");
	return 0;
}

static char *ra_hint_from_bookmark(CFDataRef bookmark) {
	CFStringRef key = ra_hint_key;
	if (key == NULL) {
		return NULL;
	}

	CFArrayRef keys = CFArrayCreate(
		kCFAllocatorDefault, (const void **)&key, 1, &kCFTypeArrayCallBacks);
	CFDictionaryRef props = CFURLCreateResourcePropertiesForKeysFromBookmarkData(
		kCFAllocatorDefault, keys, bookmark);
	CFRelease(keys);
	if (props == NULL) {
		return NULL;
	}

	char *result = NULL;
	CFTypeRef value = CFDictionaryGetValue(props, key);
	if (value != NULL && CFGetTypeID(value) == CFStringGetTypeID()) {
		char buf[PATH_MAX];
		if (CFStringGetFileSystemRepresentation((CFStringRef)value, buf, sizeof(buf))) {
			result = strdup(buf);
		}
	}
	CFRelease(props);
	return result;
}

static int ra_resolve(const char *path, char **out, int *stale) {
	*out = NULL;
	*stale = 0;

	CFURLRef fileURL = ra_url(path);
	if (fileURL == NULL) {
		return RA_UNDECODABLE;
	}

	CFErrorRef err = NULL;
	CFDataRef bookmark = CFURLCreateBookmarkDataFromFile(kCFAllocatorDefault, fileURL, &err);
	CFRelease(fileURL);
	if (bookmark == NULL) {
		if (err != NULL) {
			CFRelease(err);
		}
		return RA_UNDECODABLE;
	}

	Boolean isStale = false;
	CFURLRef target = CFURLCreateByResolvingBookmarkData(
		kCFAllocatorDefault, bookmark,
		kCFBookmarkResolutionWithoutUIMask | kCFBookmarkResolutionWithoutMountingMask,
		NULL, NULL, &isStale, &err);
	if (err != NULL) {
		CFRelease(err);
		err = NULL;
	}

	if (target != NULL) {
		char *p = ra_url_path(target);
		CFRelease(target);
		CFRelease(bookmark);
		if (p == NULL) {
			return RA_UNRESOLVED;
		}
		*out = p;
		*stale = isStale ? 1 : 0;
		return RA_RESOLVED;
	}

	char *hint = ra_hint_from_bookmark(bookmark);
	CFRelease(bookmark);
	if (hint != NULL) {
		*out = hint;
		return RA_HINT;
	}
	return RA_UNRESOLVED;
}

static int ra_create(const char *target, void **data, size_t *len) {
	*data = NULL;
	*len = 0;

	CFURLRef url = ra_url(target);
	if (url == NULL) {
		return -1;
	}

	CFErrorRef err = NULL;
	CFDataRef bookmark = CFURLCreateBookmarkData(
		kCFAllocatorDefault, url,
		kCFURLBookmarkCreationSuitableForBookmarkFile, NULL, NULL, &err);
	CFRelease(url);
	if (bookmark == NULL) {
		if (err != NULL) {
			CFRelease(err);
		}
		return -1;
	}

	CFIndex n = CFDataGetLength(bookmark);
	void *bytes = malloc((size_t)n);
	if (bytes == NULL) {
		CFRelease(bookmark);
		return -1;
	}
	CFDataGetBytes(bookmark, CFRangeMake(0, n), (UInt8 *)bytes);
	CFRelease(bookmark);

	*data = bytes;
	*len = (size_t)n;
	return 0;
}

static int ra_write(const void *bytes, size_t len, const char *path) {
	CFDataRef bookmark = CFDataCreate(kCFAllocatorDefault, (const UInt8 *)bytes, (CFIndex)len);
	if (bookmark == NULL) {
		return -1;
	}

	CFURLRef url = ra_url(path);
	if (url == NULL) {
		CFRelease(bookmark);
		return -1;
	}

	CFErrorRef err = NULL;
	Boolean ok = CFURLWriteBookmarkDataToFile(bookmark, url, 0, &err);
	if (err != NULL) {
		CFRelease(err);
	}
	CFRelease(url);
	CFRelease(bookmark);
	return ok ? 0 : -1;
}

static Boolean ra_bool_property(CFURLRef url, CFStringRef key) {
	CFBooleanRef value = NULL;
	if (!CFURLCopyResourcePropertyForKey(url, key, &value, NULL) || value == NULL) {
		return false;
	}
	Boolean result = CFBooleanGetValue(value);
	CFRelease(value);
	return result;
}

static int ra_classify(const char *path) {
	CFURLRef url = ra_url(path);
	if (url == NULL) {
		return RA_CLASS_OTHER;
	}

	int class = RA_CLASS_OTHER;
	if (ra_bool_property(url, kCFURLIsAliasFileKey) &&
		!ra_bool_property(url, kCFURLIsSymbolicLinkKey)) {
		class = RA_CLASS_RECORD;
	} else if (ra_bool_property(url, kCFURLIsPackageKey)) {
		class = RA_CLASS_PACKAGE;
	} else if (ra_bool_property(url, kCFURLIsDirectoryKey)) {
		class = RA_CLASS_DIR;
	} else if (ra_bool_property(url, kCFURLIsRegularFileKey)) {
		class = RA_CLASS_FILE;
	}
	CFRelease(url);
	return class;
}
*/
import "C"

import (
	"context"
	"fmt"
	"log/slog"
	"unsafe"

	m "realias.dev/pkg/realias/internal/model"
)

// BookmarkCodec implements RecordCodec on top of the platform's bookmark
// data APIs. Resolution always runs with the no-UI and no-mount options,
// so it never blocks on a prompt or a volume mount.
type BookmarkCodec struct {
	// modernHintKey records the outcome of the one-time capability probe
	// for the stored-path resource key.
	modernHintKey bool
}

// NewPlatformRecordCodec constructs the bookmark-backed codec, probing the
// available path-hint resource key exactly once.
func NewPlatformRecordCodec() (RecordCodec, error) {
	modern := C.ra_probe_hint_key() == 1

	slog.Debug("record codec ready", "modernHintKey", modern)

	return &BookmarkCodec{modernHintKey: modern}, nil
}

// DecodeAndResolve decodes the record at path and resolves its reference.
func (c *BookmarkCodec) DecodeAndResolve(ctx context.Context, path m.Path) (m.Resolution, error) {
	if err := ctx.Err(); err != nil {
		return m.Resolution{Status: m.Unresolved}, err
	}

	cPath := C.CString(string(path))
	defer C.free(unsafe.Pointer(cPath))

	var out *C.char

	var stale C.int

	status := C.ra_resolve(cPath, &out, &stale)
	if out != nil {
		defer C.free(unsafe.Pointer(out))
	}

	switch status {
	case C.RA_RESOLVED:
		return m.Resolution{
			Status: m.ResolvedFull,
			Target: m.Path(C.GoString(out)),
			Stale:  stale != 0,
		}, nil
	case C.RA_HINT:
		return m.Resolution{Status: m.ResolvedHint, Target: m.Path(C.GoString(out))},
			fmt.Errorf("could not fully resolve %s, using stored path hint", path)
	case C.RA_UNDECODABLE:
		return m.Resolution{Status: m.Undecodable},
			fmt.Errorf("could not decode record %s", path)
	}

	return m.Resolution{Status: m.Unresolved},
		fmt.Errorf("could not resolve %s and no path hint was stored", path)
}

// Create builds a new record bound to target.
func (c *BookmarkCodec) Create(ctx context.Context, target m.Path) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}

	cTarget := C.CString(string(target))
	defer C.free(unsafe.Pointer(cTarget))

	var data unsafe.Pointer

	var length C.size_t

	if C.ra_create(cTarget, &data, &length) != 0 {
		return Record{}, fmt.Errorf("could not create record for %s", target)
	}

	defer C.free(data)

	return Record{Data: C.GoBytes(data, C.int(length))}, nil
}

// Write persists a record at path.
func (c *BookmarkCodec) Write(ctx context.Context, rec Record, path m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(rec.Data) == 0 {
		return fmt.Errorf("refusing to write empty record to %s", path)
	}

	cPath := C.CString(string(path))
	defer C.free(unsafe.Pointer(cPath))

	if C.ra_write(unsafe.Pointer(&rec.Data[0]), C.size_t(len(rec.Data)), cPath) != 0 {
		return fmt.Errorf("could not write record to %s", path)
	}

	return nil
}

// Classify reports the platform file type of path.
func (c *BookmarkCodec) Classify(path m.Path) (Classification, error) {
	cPath := C.CString(string(path))
	defer C.free(unsafe.Pointer(cPath))

	switch C.ra_classify(cPath) {
	case C.RA_CLASS_RECORD:
		return ClassRecord, nil
	case C.RA_CLASS_PACKAGE:
		return ClassPackageDir, nil
	case C.RA_CLASS_DIR:
		return ClassDirectory, nil
	case C.RA_CLASS_FILE:
		return ClassRegularFile, nil
	}

	return ClassOther, nil
}
