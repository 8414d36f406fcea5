// Command admin is the offline maintenance tool. It talks to the
// database directly and does not need the server or Redis running.
//
//	admin cleanup-requests        delete pending friend requests past retention
//	admin close-room <room_id>    force-close a room and idle its participants
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"nearchat/backend/internal/config"
	"nearchat/backend/internal/storage"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg := config.Load()
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		logrus.WithField("err", err).Fatal("failed to connect to postgres")
	}
	store := storage.NewStorageService(db, nil)

	switch os.Args[1] {
	case "cleanup-requests":
		cutoff := time.Now().Add(-config.FriendRequestRetention)
		deleted, err := store.DeleteExpiredFriendRequests(cutoff)
		if err != nil {
			logrus.WithField("err", err).Fatal("cleanup failed")
		}
		fmt.Printf("deleted %d expired friend requests\n", deleted)

	case "close-room":
		if len(os.Args) < 3 {
			usage()
			os.Exit(1)
		}
		roomID := os.Args[2]
		room, err := store.GetRoomByID(roomID)
		if err != nil {
			logrus.WithFields(logrus.Fields{"roomId": roomID, "err": err}).
				Fatal("room lookup failed")
		}
		if err := store.CloseRoom(room.RoomID); err != nil {
			logrus.WithFields(logrus.Fields{"roomId": roomID, "err": err}).
				Fatal("failed to close room")
		}
		if err := store.ResetUsersToIdle(room.UserIDs); err != nil {
			logrus.WithFields(logrus.Fields{"roomId": roomID, "err": err}).
				Fatal("failed to reset participants")
		}
		fmt.Printf("room %s closed\n", room.RoomID)

	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: admin <cleanup-requests | close-room <room_id>>")
}
